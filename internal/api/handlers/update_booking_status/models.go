package update_booking_status

import (
	"github.com/m04kA/PTM-BookingService/internal/service/bookings/models"
	updateBookingStatus "github.com/m04kA/PTM-BookingService/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"` // "CONFIRMED" или "подтверждена"
}

// UpdateStatusResponse запись после смены статуса
type UpdateStatusResponse struct {
	*models.BookingResponse
	PreviousStatus string `json:"previousStatus"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBookingStatus.Response) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		BookingResponse: models.FromDomainBooking(resp.Booking, nil),
		PreviousStatus:  string(resp.PreviousStatus),
	}
}
