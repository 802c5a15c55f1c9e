package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	teacherRepo "github.com/m04kA/PTM-BookingService/internal/infra/storage/teacher"
)

// UseCase use case для получения слотов учителя на дату
// Также используется как источник занятости для create_booking (OccupiedSlots)
type UseCase struct {
	bookingRepo  BookingRepository
	teacherRepo  TeacherRepository
	schedule     domain.Schedule
	storeTimeout time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	teacherRepo TeacherRepository,
	schedule domain.Schedule,
	storeTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		teacherRepo:  teacherRepo,
		schedule:     schedule,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// OccupiedSlots возвращает слоты, занятые неотменёнными записями учителя на дату,
// без повторов и в порядке начала
// Ошибка хранилища всегда возвращается как ErrStoreUnavailable и никогда не превращается в пустой результат
func (uc *UseCase) OccupiedSlots(ctx context.Context, teacherID string, date time.Time) ([]domain.Slot, error) {
	day := domain.DateOnly(date)

	bookings, err := uc.bookingRepo.List(ctx, domain.BookingFilter{
		TeacherID:        &teacherID,
		Date:             &day,
		ExcludeCancelled: true,
	})
	if err != nil {
		uc.logger.Error("OccupiedSlots: failed to list bookings for teacher=%s, date=%s: %v",
			teacherID, day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: list bookings: %w", ErrStoreUnavailable, err)
	}

	seen := make(map[domain.Slot]struct{}, len(bookings))
	occupied := make([]domain.Slot, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if _, ok := seen[b.Slot]; ok {
			continue
		}
		seen[b.Slot] = struct{}{}
		occupied = append(occupied, b.Slot)
	}

	sort.Slice(occupied, func(i, j int) bool {
		return occupied[i].Start.IsBefore(occupied[j].Start)
	})

	return occupied, nil
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day := domain.DateOnly(req.Date)
	uc.logger.Info("GetAvailableSlots: teacher=%s, date=%s", req.TeacherID, day.Format(domain.DateFormat))

	if _, err := uc.teacherRepo.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			uc.logger.Warn("GetAvailableSlots: teacher=%s not found", req.TeacherID)
			return nil, ErrTeacherNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get teacher=%s: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: get teacher: %v", ErrInternal, err)
	}

	if !uc.schedule.AllowsDate(day) {
		uc.logger.Warn("GetAvailableSlots: date=%s is %s, meetings are on %s",
			day.Format(domain.DateFormat), day.Weekday(), uc.schedule.Weekday)
		return nil, fmt.Errorf("%w: meetings are held on %s", ErrInvalidDate, uc.schedule.Weekday)
	}

	slots, err := uc.schedule.Window.GenerateSlots()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid slot window: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if uc.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.storeTimeout)
		defer cancel()
	}

	occupied, err := uc.OccupiedSlots(ctx, req.TeacherID, day)
	if err != nil {
		return nil, err
	}

	taken := make(map[domain.Slot]struct{}, len(occupied))
	for _, s := range occupied {
		taken[s] = struct{}{}
	}

	result := make([]Slot, 0, len(slots))
	free := 0
	for _, s := range slots {
		_, isTaken := taken[s]
		if !isTaken {
			free++
		}
		result = append(result, Slot{Slot: s, Available: !isTaken})
	}

	uc.logger.Info("GetAvailableSlots: teacher=%s, date=%s, %d/%d slots free",
		req.TeacherID, day.Format(domain.DateFormat), free, len(slots))

	return &Response{
		TeacherID: req.TeacherID,
		Date:      day,
		Slots:     result,
	}, nil
}
