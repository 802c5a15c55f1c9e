package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/PTM-BookingService/internal/api/handlers"
	"github.com/m04kA/PTM-BookingService/internal/service/bookings"
	"github.com/m04kA/PTM-BookingService/pkg/ptr"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: teacherId, date, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := ToServiceRequest(r)

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("GET /bookings - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved: teacher_id=%q, date=%q, status=%q, count=%d",
		ptr.Deref(req.TeacherID, ""), ptr.Deref(req.Date, ""), ptr.Deref(req.Status, ""), len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
