package get_stats

import (
	"errors"
	"net/http"

	"github.com/m04kA/PTM-BookingService/internal/api/handlers"
	"github.com/m04kA/PTM-BookingService/internal/service/bookings"
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

// Handle GET /api/v1/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		if errors.Is(err, bookings.ErrStoreUnavailable) {
			h.logger.Error("GET /stats - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("GET /stats - Failed to build stats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stats - Stats built: total=%d", stats.Total)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
