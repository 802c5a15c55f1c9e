package update_booking_status

import (
	"context"
	"time"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	"github.com/m04kA/PTM-BookingService/internal/integrations/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(
		ctx context.Context,
		id int64,
		expected domain.BookingStatus,
		next domain.BookingStatus,
		updatedAt time.Time,
	) (*domain.Booking, error)
}

// EventPublisher публикация событий о бронированиях
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics счётчик переходов статусов
type Metrics interface {
	StatusTransition(from, to string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
