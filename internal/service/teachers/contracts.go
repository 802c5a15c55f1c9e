package teachers

import (
	"context"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

// TeacherRepository интерфейс справочника учителей
type TeacherRepository interface {
	List(ctx context.Context) ([]domain.Teacher, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
