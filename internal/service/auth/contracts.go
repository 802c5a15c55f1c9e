package auth

import (
	"context"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

// UserRepository интерфейс хранилища учётных записей
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
