package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PTM-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PTM-BookingService/internal/integrations/events"
)

// UseCase use case смены статуса бронирования администратором
type UseCase struct {
	bookingRepo  BookingRepository
	publisher    EventPublisher
	metrics      Metrics
	storeTimeout time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	metrics Metrics,
	storeTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		metrics:      metrics,
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

// Execute выполняет переход статуса
// Запись меняется одним условным UPDATE: при любой ошибке прежний статус сохраняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	uc.logger.Info("UpdateBookingStatus: booking id=%d, status=%s", req.BookingID, req.Status)

	next, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: unknown status=%q for booking id=%d", req.Status, req.BookingID)
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, req.Status)
	}

	if uc.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.storeTimeout)
		defer cancel()
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBookingStatus: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: get booking: %v", ErrStoreUnavailable, err)
	}

	previous := booking.Status
	now := uc.timeProvider.Now()

	if err := booking.Transition(next, now); err != nil {
		uc.logger.Warn("UpdateBookingStatus: booking id=%d: %s -> %s rejected", req.BookingID, previous, next)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, previous, next)
	}

	updated, err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, previous, next, now)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			uc.logger.Warn("UpdateBookingStatus: booking id=%d was deleted concurrently", req.BookingID)
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusMismatch), errors.Is(err, bookingRepo.ErrSlotTaken):
			uc.logger.Warn("UpdateBookingStatus: booking id=%d was modified concurrently: %v", req.BookingID, err)
			return nil, ErrConcurrentUpdate
		default:
			uc.logger.Error("UpdateBookingStatus: failed to update booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: update status: %v", ErrStoreUnavailable, err)
		}
	}

	uc.metrics.StatusTransition(string(previous), string(next))
	uc.logger.Info("UpdateBookingStatus: booking id=%d: %s -> %s", updated.ID, previous, next)

	event := events.NewEvent(events.BookingStatusChanged, updated, now).WithPreviousStatus(previous)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("UpdateBookingStatus: failed to publish %s for booking id=%d: %v", event.Type, updated.ID, err)
	}

	return &Response{
		Booking:        updated,
		PreviousStatus: previous,
	}, nil
}
