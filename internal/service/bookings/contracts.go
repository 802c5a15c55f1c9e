package bookings

import (
	"context"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	"github.com/m04kA/PTM-BookingService/internal/integrations/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// TeacherRepository интерфейс справочника учителей
type TeacherRepository interface {
	List(ctx context.Context) ([]domain.Teacher, error)
}

// EventPublisher публикация событий о бронированиях
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
