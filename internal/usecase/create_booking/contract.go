package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	"github.com/m04kA/PTM-BookingService/internal/integrations/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityResolver источник занятых слотов (get_available_slots.UseCase)
type AvailabilityResolver interface {
	OccupiedSlots(ctx context.Context, teacherID string, date time.Time) ([]domain.Slot, error)
}

// TeacherRepository интерфейс справочника учителей
type TeacherRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Teacher, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// KeyLocker взаимное исключение по ключу (учитель+дата) на время check-then-write
type KeyLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// EventPublisher публикация событий о бронированиях
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics счётчик исходов создания бронирования
type Metrics interface {
	BookingOutcome(outcome string)
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
