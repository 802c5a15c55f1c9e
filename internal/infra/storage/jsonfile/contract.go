package jsonfile

import (
	"context"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

// TeacherResolver находит учителя по подписи из старого формата записи ("Имя|Кабинет")
type TeacherResolver interface {
	FindByLabel(ctx context.Context, name, room string) (*domain.Teacher, error)
}
