package create_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

var (
	// ErrMissingField возвращается, когда не заполнено обязательное поле
	ErrMissingField = fmt.Errorf("%w: create_booking: missing required field", domain.ErrValidation)

	// ErrInvalidInput возвращается, когда поле заполнено некорректно
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrInvalidDate возвращается, когда дата не попадает на день приёма
	ErrInvalidDate = fmt.Errorf("%w: create_booking: date is not a meeting day", domain.ErrValidation)

	// ErrInvalidSlot возвращается, когда слота нет в календаре приёма
	ErrInvalidSlot = fmt.Errorf("%w: create_booking: slot is not in the calendar", domain.ErrValidation)

	// ErrTeacherNotFound возвращается, когда учителя нет в справочнике
	ErrTeacherNotFound = fmt.Errorf("%w: create_booking: teacher not found", domain.ErrValidation)

	// ErrSlotTaken возвращается, когда слот уже занят неотменённой записью
	ErrSlotTaken = fmt.Errorf("%w: create_booking: slot already taken", domain.ErrConflict)

	// ErrStoreUnavailable возвращается, когда хранилище не ответило вовремя или вернуло ошибку
	ErrStoreUnavailable = fmt.Errorf("%w: create_booking", domain.ErrStoreUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ConflictError слот занят; содержит актуальные свободные слоты, чтобы клиент мог выбрать другой
type ConflictError struct {
	Slot      domain.Slot
	FreeSlots []domain.Slot // nil, если занятость не удалось перечитать
}

func (e *ConflictError) Error() string {
	free := make([]string, 0, len(e.FreeSlots))
	for _, s := range e.FreeSlots {
		free = append(free, s.String())
	}
	return fmt.Sprintf("%v: %s (free: %s)", ErrSlotTaken, e.Slot, strings.Join(free, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotTaken
}
