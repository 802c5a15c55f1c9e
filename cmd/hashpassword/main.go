package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/m04kA/PTM-BookingService/internal/service/auth"
)

// Печатает bcrypt хеш пароля для [admin].password_hash или PTM_ADMIN_PASSWORD_HASH.
// Пароль читается из первого аргумента или из stdin.
func main() {
	password, err := readPassword()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read password: %v\n", err)
		os.Exit(1)
	}
	if password == "" {
		fmt.Fprintln(os.Stderr, "usage: hashpassword <password>  (or pass it on stdin)")
		os.Exit(2)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}

func readPassword() (string, error) {
	if len(os.Args) > 1 {
		return os.Args[1], nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", nil
	}
	return strings.TrimRight(line, "\r\n"), nil
}
