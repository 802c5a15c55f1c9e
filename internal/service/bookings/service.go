package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PTM-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PTM-BookingService/internal/integrations/events"
	"github.com/m04kA/PTM-BookingService/internal/service/bookings/models"
)

// Service сервис администрирования бронирований
type Service struct {
	bookingRepo  BookingRepository
	teacherRepo  TeacherRepository
	publisher    EventPublisher
	storeTimeout time.Duration
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	teacherRepo TeacherRepository,
	publisher EventPublisher,
	storeTimeout time.Duration,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		teacherRepo:  teacherRepo,
		publisher:    publisher,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// List получает бронирования с фильтрацией
//
// Примеры использования:
// - Все записи: List(ctx, &ListBookingsRequest{})
// - Записи к учителю на дату: указать TeacherID и Date
// - Только новые: Status = "NEW" (или "новая")
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, s.teacherIndex(ctx)), nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	booking, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking, s.teacherIndex(ctx)), nil
}

// Delete удаляет бронирование; слот освобождается
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	booking, err := s.get(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d already deleted", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Delete: booking id=%d deleted", id)

	event := events.NewEvent(events.BookingDeleted, booking, time.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Delete: failed to publish %s for booking id=%d: %v", event.Type, id, err)
	}

	return nil
}

// Stats считает сводку: всего, по статусам, по учителям и последние записи
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{})
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrStoreUnavailable, err)
	}

	teachers := s.teacherIndex(ctx)

	resp := &models.StatsResponse{
		Total:     len(bookings),
		ByStatus:  make(map[string]int, len(domain.AllStatuses)),
		ByTeacher: make([]models.TeacherCount, 0),
	}
	for _, status := range domain.AllStatuses {
		resp.ByStatus[string(status)] = 0
	}

	perTeacher := make(map[string]int)
	for _, b := range bookings {
		resp.ByStatus[string(b.Status)]++
		perTeacher[b.TeacherID]++
	}

	for teacherID, count := range perTeacher {
		resp.ByTeacher = append(resp.ByTeacher, models.TeacherCount{
			TeacherID:   teacherID,
			TeacherName: teachers[teacherID].Name,
			Count:       count,
		})
	}
	sort.Slice(resp.ByTeacher, func(i, j int) bool {
		if resp.ByTeacher[i].Count != resp.ByTeacher[j].Count {
			return resp.ByTeacher[i].Count > resp.ByTeacher[j].Count
		}
		return resp.ByTeacher[i].TeacherID < resp.ByTeacher[j].TeacherID
	})

	recent := make([]*domain.Booking, len(bookings))
	copy(recent, bookings)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > domain.RecentBookings {
		recent = recent[:domain.RecentBookings]
	}
	resp.Recent = models.FromDomainBookingList(recent, teachers).Bookings

	s.logger.Info("Stats: total=%d, teachers=%d", resp.Total, len(resp.ByTeacher))
	return resp, nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
	}

	return booking, nil
}

// teacherIndex справочник учителей по ID; при ошибке ответ просто останется без имён
func (s *Service) teacherIndex(ctx context.Context) map[string]domain.Teacher {
	teachers, err := s.teacherRepo.List(ctx)
	if err != nil {
		s.logger.Warn("failed to load teacher directory: %v", err)
		return nil
	}

	index := make(map[string]domain.Teacher, len(teachers))
	for _, t := range teachers {
		index[t.ID] = t
	}
	return index
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}
