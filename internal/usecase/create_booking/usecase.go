package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PTM-BookingService/internal/infra/storage/booking"
	teacherRepo "github.com/m04kA/PTM-BookingService/internal/infra/storage/teacher"
	"github.com/m04kA/PTM-BookingService/internal/integrations/events"
	"github.com/m04kA/PTM-BookingService/pkg/metrics"
	"github.com/m04kA/PTM-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	resolver     AvailabilityResolver
	teacherRepo  TeacherRepository
	txManager    TransactionManager
	locker       KeyLocker
	publisher    EventPublisher
	metrics      Metrics
	schedule     domain.Schedule
	storeTimeout time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resolver AvailabilityResolver,
	teacherRepo TeacherRepository,
	txManager TransactionManager,
	locker KeyLocker,
	publisher EventPublisher,
	metrics Metrics,
	schedule domain.Schedule,
	storeTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resolver:     resolver,
		teacherRepo:  teacherRepo,
		txManager:    txManager,
		locker:       locker,
		publisher:    publisher,
		metrics:      metrics,
		schedule:     schedule,
		storeTimeout: storeTimeout,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка занятости и запись выполняются под блокировкой по (учитель, дата)
// и в сериализуемой транзакции; хранилище дополнительно проверяет уникальность само
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.BookingOutcome(outcome(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request", ErrMissingField)
	}
	normalizeRequest(req)

	day := domain.DateOnly(req.Date)
	uc.logger.Info("CreateBooking: teacher=%s, date=%s, slot=%s",
		req.TeacherID, day.Format(domain.DateFormat), req.Slot)

	// 1. Обязательные поля
	if err := validateRequiredFields(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. День приёма
	if !uc.schedule.AllowsDate(day) {
		uc.logger.Warn("CreateBooking: date=%s is %s, meetings are on %s",
			day.Format(domain.DateFormat), day.Weekday(), uc.schedule.Weekday)
		return nil, fmt.Errorf("%w: meetings are held on %s", ErrInvalidDate, uc.schedule.Weekday)
	}

	// 3. Слот из календаря
	slot, err := validateSlot(req.Slot, uc.schedule.Window)
	if err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	if _, err := uc.teacherRepo.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			uc.logger.Warn("CreateBooking: teacher=%s not found", req.TeacherID)
			return nil, fmt.Errorf("%w: %s", ErrTeacherNotFound, req.TeacherID)
		}
		uc.logger.Error("CreateBooking: failed to get teacher=%s: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: get teacher: %v", ErrInternal, err)
	}

	if uc.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.storeTimeout)
		defer cancel()
	}

	// 4-5. Проверка занятости и запись
	created, err := uc.createExclusive(ctx, req, day, slot)
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: slot %s is taken for teacher=%s, date=%s",
				slot, req.TeacherID, day.Format(domain.DateFormat))
			return nil, uc.conflict(ctx, req.TeacherID, day, slot)
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	event := events.NewEvent(events.BookingCreated, created, created.CreatedAt)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for booking id=%d: %v", event.Type, created.ID, err)
	}

	return toResponse(created), nil
}

// createExclusive перечитывает занятость и создаёт запись в одной критической секции
func (uc *UseCase) createExclusive(
	ctx context.Context,
	req *Request,
	day time.Time,
	slot domain.Slot,
) (*domain.Booking, error) {
	unlock, err := uc.locker.Lock(ctx, lockKey(req.TeacherID, day.Format(domain.DateFormat)))
	if err != nil {
		return nil, fmt.Errorf("%w: wait for slot lock: %v", ErrStoreUnavailable, err)
	}
	defer unlock()

	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		occupied, err := uc.resolver.OccupiedSlots(txCtx, req.TeacherID, day)
		if err != nil {
			return fmt.Errorf("%w: occupied slots: %w", ErrStoreUnavailable, err)
		}

		for _, taken := range occupied {
			if taken == slot {
				return ErrSlotTaken
			}
		}

		now := uc.timeProvider.Now()
		booking := &domain.Booking{
			TeacherID:    req.TeacherID,
			Date:         day,
			Slot:         slot,
			Status:       domain.StatusNew,
			ParentName:   req.ParentName,
			StudentName:  req.StudentName,
			StudentClass: req.StudentClass,
			Phone:        req.Phone,
			Email:        req.Email,
			Comment:      req.Comment,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: create booking: %w", ErrStoreUnavailable, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Транзакция откатилась; параллельная запись с другого экземпляра могла занять слот
		if errors.Is(err, txmanager.ErrSerialization) {
			return nil, uc.afterSerializationFailure(ctx, req.TeacherID, day, slot, err)
		}
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrStoreUnavailable) {
			return nil, err
		}
		// Ошибки транзакции (begin/commit/serialization) - хранилище не смогло выполнить запись
		return nil, fmt.Errorf("%w: transaction: %v", ErrStoreUnavailable, err)
	}

	return result, nil
}

// afterSerializationFailure перечитывает занятость вне транзакции: если слот уже занят,
// это обычный конфликт, иначе хранилище не смогло выполнить запись
func (uc *UseCase) afterSerializationFailure(
	ctx context.Context,
	teacherID string,
	day time.Time,
	slot domain.Slot,
	cause error,
) error {
	uc.logger.Warn("CreateBooking: serialization failure for teacher=%s, date=%s, slot=%s: %v",
		teacherID, day.Format(domain.DateFormat), slot, cause)

	occupied, err := uc.resolver.OccupiedSlots(ctx, teacherID, day)
	if err != nil {
		return fmt.Errorf("%w: recheck after serialization failure: %v", ErrStoreUnavailable, err)
	}

	for _, taken := range occupied {
		if taken == slot {
			return ErrSlotTaken
		}
	}

	return fmt.Errorf("%w: transaction: %v", ErrStoreUnavailable, cause)
}

// conflict перечитывает занятость, чтобы предложить клиенту свободные слоты
func (uc *UseCase) conflict(ctx context.Context, teacherID string, day time.Time, slot domain.Slot) error {
	conflictErr := &ConflictError{Slot: slot}

	all, err := uc.schedule.Window.GenerateSlots()
	if err != nil {
		return conflictErr
	}

	occupied, err := uc.resolver.OccupiedSlots(ctx, teacherID, day)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to reload free slots after conflict: %v", err)
		return conflictErr
	}

	taken := make(map[domain.Slot]struct{}, len(occupied))
	for _, s := range occupied {
		taken[s] = struct{}{}
	}

	conflictErr.FreeSlots = make([]domain.Slot, 0, len(all))
	for _, s := range all {
		if _, ok := taken[s]; !ok {
			conflictErr.FreeSlots = append(conflictErr.FreeSlots, s)
		}
	}

	return conflictErr
}

// outcome метка исхода для метрик
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCreated
	case errors.Is(err, domain.ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, domain.ErrValidation):
		return metrics.OutcomeInvalid
	case errors.Is(err, domain.ErrStoreUnavailable):
		return metrics.OutcomeStoreUnavailable
	default:
		return metrics.OutcomeError
	}
}
