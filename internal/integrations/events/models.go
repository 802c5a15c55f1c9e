package events

import (
	"time"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

// Type тип события, используется как routing key
type Type string

const (
	BookingCreated       Type = "booking.created"
	BookingStatusChanged Type = "booking.status_changed"
	BookingDeleted       Type = "booking.deleted"
)

// Event сообщение о бронировании
type Event struct {
	Type           Type      `json:"type"`
	OccurredAt     time.Time `json:"occurredAt"`
	Booking        Booking   `json:"booking"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
}

// Booking данные бронирования в событии. Контакты родителя не передаются
type Booking struct {
	ID        int64  `json:"id"`
	TeacherID string `json:"teacherId"`
	Date      string `json:"date"`
	Slot      string `json:"slot"`
	Status    string `json:"status"`
}

// NewEvent собирает событие по бронированию
func NewEvent(eventType Type, b *domain.Booking, occurredAt time.Time) Event {
	return Event{
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Booking: Booking{
			ID:        b.ID,
			TeacherID: b.TeacherID,
			Date:      b.Date.Format(domain.DateFormat),
			Slot:      b.Slot.String(),
			Status:    string(b.Status),
		},
	}
}

// WithPreviousStatus добавляет предыдущий статус (для booking.status_changed)
func (e Event) WithPreviousStatus(status domain.BookingStatus) Event {
	e.PreviousStatus = string(status)
	return e
}
