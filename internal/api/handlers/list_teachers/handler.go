package list_teachers

import (
	"net/http"

	"github.com/m04kA/PTM-BookingService/internal/api/handlers"
)

type Handler struct {
	service TeacherService
	logger  Logger
}

func NewHandler(service TeacherService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/teachers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /teachers - Failed to list teachers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /teachers - Teachers retrieved: count=%d", len(result.Teachers))
	handlers.RespondJSON(w, http.StatusOK, result)
}
