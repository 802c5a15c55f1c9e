package bookings

import (
	"fmt"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrStoreUnavailable возвращается, когда хранилище не ответило вовремя или вернуло ошибку
	ErrStoreUnavailable = fmt.Errorf("%w: bookings service", domain.ErrStoreUnavailable)
)
