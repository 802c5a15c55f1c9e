package list_teachers

import (
	"context"

	"github.com/m04kA/PTM-BookingService/internal/service/teachers/models"
)

type TeacherService interface {
	List(ctx context.Context) (*models.TeacherListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
