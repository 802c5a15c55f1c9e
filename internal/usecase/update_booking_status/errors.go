package update_booking_status

import (
	"fmt"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: update_booking_status: invalid input data", domain.ErrValidation)

	// ErrUnknownStatus возвращается при неизвестном значении статуса
	ErrUnknownStatus = fmt.Errorf("%w: update_booking_status", domain.ErrUnknownStatus)

	// ErrInvalidTransition возвращается, когда переход между статусами запрещён
	ErrInvalidTransition = fmt.Errorf("%w: update_booking_status", domain.ErrInvalidTransition)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: update_booking_status: booking not found", domain.ErrNotFound)

	// ErrConcurrentUpdate возвращается, когда статус успели изменить между чтением и записью
	ErrConcurrentUpdate = fmt.Errorf("%w: update_booking_status: booking was modified concurrently", domain.ErrConflict)

	// ErrStoreUnavailable возвращается, когда хранилище не ответило вовремя или вернуло ошибку
	ErrStoreUnavailable = fmt.Errorf("%w: update_booking_status", domain.ErrStoreUnavailable)
)
