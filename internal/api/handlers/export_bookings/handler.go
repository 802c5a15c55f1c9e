package export_bookings

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/PTM-BookingService/internal/api/handlers"
	"github.com/m04kA/PTM-BookingService/internal/service/bookings"
	"github.com/m04kA/PTM-BookingService/internal/service/bookings/models"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	filePrefix      = "bookings"

	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
	now     func() time.Time
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle GET /api/v1/bookings/export
// Query params: teacherId, date, status (опционально, как у списка)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListBookingsRequest{
		TeacherID: handlers.OptionalQuery(r, "teacherId"),
		Date:      handlers.OptionalQuery(r, "date"),
		Status:    handlers.OptionalQuery(r, "status"),
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/export - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("GET /bookings/export - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /bookings/export - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, result.Bookings); err != nil {
		h.logger.Error("GET /bookings/export - Failed to build workbook: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", filePrefix, h.now().Format("20060102"))

	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("GET /bookings/export - Failed to write response: %v", err)
		return
	}

	h.logger.Info("GET /bookings/export - Exported %d bookings to %s", len(result.Bookings), filename)
}
