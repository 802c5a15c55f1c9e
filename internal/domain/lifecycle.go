package domain

import (
	"fmt"
	"strings"
	"time"
)

// transitions допустимые переходы статусов
// CANCELLED и COMPLETED - конечные
var transitions = map[BookingStatus][]BookingStatus{
	StatusNew:       {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// legacyStatuses подписи статусов, которые использовала админка на русском
var legacyStatuses = map[string]BookingStatus{
	"новая":        StatusNew,
	"подтверждена": StatusConfirmed,
	"отменена":     StatusCancelled,
	"завершена":    StatusCompleted,
}

// ParseBookingStatus разбирает статус (каноническое значение или русская подпись)
func ParseBookingStatus(s string) (BookingStatus, error) {
	normalized := strings.TrimSpace(s)

	status := BookingStatus(strings.ToUpper(normalized))
	if status.IsValid() {
		return status, nil
	}

	if legacy, ok := legacyStatuses[strings.ToLower(normalized)]; ok {
		return legacy, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// IsValid возвращает true для известных статусов
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal возвращает true, если из статуса нет переходов
func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

// CanTransitionTo проверяет допустимость перехода
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition меняет статус записи, если переход допустим
// При ошибке запись не изменяется
func (b *Booking) Transition(next BookingStatus, now time.Time) error {
	if !next.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, next)
	}
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}

	b.Status = next
	b.UpdatedAt = now
	return nil
}
