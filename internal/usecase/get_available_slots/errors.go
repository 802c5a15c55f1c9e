package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_available_slots: invalid input data", domain.ErrValidation)

	// ErrInvalidDate возвращается, когда дата не попадает на день приёма
	ErrInvalidDate = fmt.Errorf("%w: get_available_slots: date is not a meeting day", domain.ErrValidation)

	// ErrTeacherNotFound возвращается, когда учителя нет в справочнике
	ErrTeacherNotFound = fmt.Errorf("%w: get_available_slots: teacher not found", domain.ErrNotFound)

	// ErrStoreUnavailable возвращается, когда хранилище не ответило или вернуло ошибку
	ErrStoreUnavailable = fmt.Errorf("%w: get_available_slots", domain.ErrStoreUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase (например, некорректное окно приёма)
	ErrInternal = errors.New("get_available_slots: internal error")
)
