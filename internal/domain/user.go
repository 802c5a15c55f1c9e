package domain

// User учётная запись администратора
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt
	Role         string
}

// RoleAdmin роль администратора
const RoleAdmin = "admin"
