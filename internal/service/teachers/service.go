package teachers

import (
	"context"
	"fmt"

	"github.com/m04kA/PTM-BookingService/internal/service/teachers/models"
)

// Service сервис справочника учителей
type Service struct {
	teacherRepo TeacherRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(teacherRepo TeacherRepository, logger Logger) *Service {
	return &Service{
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// List возвращает всех учителей
func (s *Service) List(ctx context.Context) (*models.TeacherListResponse, error) {
	teachers, err := s.teacherRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: failed to load teachers: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTeachers(teachers), nil
}
