package list_bookings

import (
	"net/http"

	"github.com/m04kA/PTM-BookingService/internal/api/handlers"
	"github.com/m04kA/PTM-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтры из query параметров teacherId, date, status
func ToServiceRequest(r *http.Request) *models.ListBookingsRequest {
	return &models.ListBookingsRequest{
		TeacherID: handlers.OptionalQuery(r, "teacherId"),
		Date:      handlers.OptionalQuery(r, "date"),
		Status:    handlers.OptionalQuery(r, "status"),
	}
}
