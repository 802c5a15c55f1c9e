package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PTM-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/PTM-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotMeetingDay    = "в выбранную дату приём не проводится"
	msgTeacherNotFound  = "учитель не найден"
	msgInvalidTeacherID = "некорректный ID учителя"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/teachers/{teacherId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	teacherID := mux.Vars(r)["teacherId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /teachers/{id}/available-slots - Missing date: teacher_id=%s", teacherID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /teachers/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		TeacherID: teacherID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTeacherNotFound):
			h.logger.Warn("GET /teachers/{id}/available-slots - Teacher not found: teacher_id=%s", teacherID)
			handlers.RespondNotFound(w, msgTeacherNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /teachers/{id}/available-slots - Not a meeting day: teacher_id=%s, date=%s",
				teacherID, dateStr)
			handlers.RespondBadRequest(w, msgNotMeetingDay)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /teachers/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTeacherID)

		case errors.Is(err, getAvailableSlots.ErrStoreUnavailable):
			h.logger.Error("GET /teachers/{id}/available-slots - Store unavailable: teacher_id=%s, error=%v",
				teacherID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /teachers/{id}/available-slots - Failed to get slots: teacher_id=%s, date=%s, error=%v",
				teacherID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /teachers/{id}/available-slots - Slots retrieved: teacher_id=%s, date=%s, slots_count=%d",
		teacherID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
