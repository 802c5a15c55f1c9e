package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/PTM-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/PTM-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingField       = "заполните все обязательные поля"
	msgInvalidInput       = "некорректные данные записи"
	msgNotMeetingDay      = "в выбранную дату приём не проводится"
	msgInvalidSlot        = "выбранное время не входит в расписание приёма"
	msgTeacherNotFound    = "учитель не найден"
	msgSlotTaken          = "это время уже занято, выберите другое"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if errs := handlers.ValidateStruct(&req); errs != nil {
		h.logger.Warn("POST /bookings - Validation failed: %s", handlers.FormatValidationErrors(errs))
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgMissingField, errs)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *createBooking.ConflictError

		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /bookings - Slot taken: teacher_id=%s, date=%s, slot=%s, free=%d",
				req.TeacherID, req.Date, req.SelectedTime, len(conflict.FreeSlots))
			handlers.RespondConflict(w, msgSlotTaken, FromConflictError(conflict))

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: teacher_id=%s, date=%s, slot=%s",
				req.TeacherID, req.Date, req.SelectedTime)
			handlers.RespondConflict(w, msgSlotTaken, nil)

		case errors.Is(err, createBooking.ErrMissingField):
			h.logger.Warn("POST /bookings - Missing field: %v", err)
			handlers.RespondBadRequest(w, msgMissingField)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Not a meeting day: teacher_id=%s, date=%s", req.TeacherID, req.Date)
			handlers.RespondBadRequest(w, msgNotMeetingDay)

		case errors.Is(err, createBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot: teacher_id=%s, slot=%s", req.TeacherID, req.SelectedTime)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrTeacherNotFound):
			h.logger.Warn("POST /bookings - Teacher not found: teacher_id=%s", req.TeacherID)
			handlers.RespondBadRequest(w, msgTeacherNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: teacher_id=%s, date=%s, error=%v",
				req.TeacherID, req.Date, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: teacher_id=%s, date=%s, error=%v",
				req.TeacherID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, teacher_id=%s, date=%s, slot=%s",
		result.ID, result.TeacherID, response.Date, response.SelectedTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
