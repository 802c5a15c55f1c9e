package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/PTM-BookingService/internal/api/handlers"
	updateBookingStatus "github.com/m04kA/PTM-BookingService/internal/usecase/update_booking_status"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownStatus      = "неизвестный статус"
	msgInvalidTransition  = "переход в этот статус недопустим"
	msgNotFound           = "бронирование не найдено"
	msgConcurrentUpdate   = "бронирование было изменено, обновите страницу"
)

type Handler struct {
	useCase UpdateBookingStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if errs := handlers.ValidateStruct(&req); errs != nil {
		h.logger.Warn("PUT /bookings/{id} - Validation failed: booking_id=%d, %s",
			bookingID, handlers.FormatValidationErrors(errs))
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRequestBody, errs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateBookingStatus.Request{
		BookingID: bookingID,
		Status:    req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, updateBookingStatus.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBookingStatus.ErrUnknownStatus):
			h.logger.Warn("PUT /bookings/{id} - Unknown status: booking_id=%d, status=%q", bookingID, req.Status)
			handlers.RespondBadRequest(w, msgUnknownStatus)

		case errors.Is(err, updateBookingStatus.ErrInvalidTransition):
			h.logger.Warn("PUT /bookings/{id} - Invalid transition: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, updateBookingStatus.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, updateBookingStatus.ErrConcurrentUpdate):
			h.logger.Warn("PUT /bookings/{id} - Concurrent update: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConcurrentUpdate, nil)

		case errors.Is(err, updateBookingStatus.ErrStoreUnavailable):
			h.logger.Error("PUT /bookings/{id} - Store unavailable: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update status: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Status updated: booking_id=%d, %s -> %s",
		bookingID, result.PreviousStatus, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
