package get_available_slots

import (
	"context"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// TeacherRepository интерфейс справочника учителей
type TeacherRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Teacher, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
