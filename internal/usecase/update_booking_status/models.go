package update_booking_status

import "github.com/m04kA/PTM-BookingService/internal/domain"

// Request запрос на смену статуса
type Request struct {
	BookingID int64
	Status    string // канонический ("CONFIRMED") или прежний русский ("подтверждена")
}

// Response бронирование после смены статуса
type Response struct {
	Booking        *domain.Booking
	PreviousStatus domain.BookingStatus
}
