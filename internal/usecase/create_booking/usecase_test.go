package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	"github.com/m04kA/PTM-BookingService/internal/infra/storage/jsonfile"
	"github.com/m04kA/PTM-BookingService/internal/infra/storage/teacher"
	"github.com/m04kA/PTM-BookingService/internal/integrations/events"
	"github.com/m04kA/PTM-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/PTM-BookingService/pkg/keylock"
	"github.com/m04kA/PTM-BookingService/pkg/logger"
	"github.com/m04kA/PTM-BookingService/pkg/metrics"
	"github.com/m04kA/PTM-BookingService/pkg/ptr"
	"github.com/m04kA/PTM-BookingService/pkg/txmanager"
)

var (
	saturday = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	fixedNow = time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

// failingStore хранилище, которое не отвечает
type failingStore struct {
	err error
}

func (f *failingStore) List(context.Context, domain.BookingFilter) ([]*domain.Booking, error) {
	return nil, f.err
}

func (f *failingStore) Create(context.Context, *domain.Booking) (*domain.Booking, error) {
	return nil, f.err
}

// racyStore отдаёт пустую занятость, но отклоняет запись, как уникальный индекс в БД
type racyStore struct {
	*jsonfile.Store
}

func (r racyStore) List(context.Context, domain.BookingFilter) ([]*domain.Booking, error) {
	return []*domain.Booking{}, nil
}

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *recordingMetrics) BookingOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcome]++
}

func (m *recordingMetrics) count(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomes[outcome]
}

type fixture struct {
	store     *jsonfile.Store
	publisher *recordingPublisher
	metrics   *recordingMetrics
	uc        *UseCase
}

type store interface {
	get_available_slots.BookingRepository
	BookingRepository
}

func newFixture(t *testing.T, st store) *fixture {
	t.Helper()

	teachers, err := teacher.NewRepository([]domain.Teacher{
		{ID: "ivanova", Name: "Иванова М.П.", Room: "204"},
		{ID: "petrov", Name: "Петров С.А.", Room: "101"},
	})
	require.NoError(t, err)

	log := logger.NewNop()
	schedule := domain.DefaultSchedule()
	resolver := get_available_slots.NewUseCase(st, teachers, schedule, time.Second, log)

	f := &fixture{
		publisher: &recordingPublisher{},
		metrics:   &recordingMetrics{outcomes: make(map[string]int)},
	}
	if js, ok := st.(*jsonfile.Store); ok {
		f.store = js
	}

	f.uc = NewUseCase(st, resolver, teachers, txmanager.Nop{}, keylock.New(), f.publisher, f.metrics,
		schedule, time.Second, log).WithTimeProvider(fixedTime{t: fixedNow})

	return f
}

func validRequest(slot string) *Request {
	return &Request{
		TeacherID:    "ivanova",
		Date:         saturday,
		Slot:         slot,
		ParentName:   "Иванова Анна",
		StudentName:  "Иванов Петя",
		StudentClass: "5А",
		Phone:        "+79990000000",
	}
}

func TestExecute_CreatesNewBooking(t *testing.T) {
	f := newFixture(t, jsonfile.NewMemory())

	resp, err := f.uc.Execute(context.Background(), validRequest("11:30-11:50"))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, domain.StatusNew, resp.Status)
	assert.Equal(t, fixedNow, resp.CreatedAt)
	assert.Equal(t, fixedNow, resp.UpdatedAt)
	assert.Equal(t, "11:30-11:50", resp.Slot.String())

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.BookingCreated, f.publisher.events[0].Type)
	assert.Equal(t, 1, f.metrics.count(metrics.OutcomeCreated))
}

func TestExecute_SlotTakenAndNeighbourFree(t *testing.T) {
	f := newFixture(t, jsonfile.NewMemory())
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, validRequest("11:30-11:50"))
	require.NoError(t, err)
	_, err = f.store.UpdateStatus(ctx, first.ID, domain.StatusNew, domain.StatusConfirmed, fixedNow)
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, validRequest("11:30-11:50"))
	require.ErrorIs(t, err, ErrSlotTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	free := make([]string, 0, len(conflict.FreeSlots))
	for _, s := range conflict.FreeSlots {
		free = append(free, s.String())
	}
	assert.Equal(t, []string{"11:50-12:10", "12:10-12:30", "12:30-12:50"}, free)

	_, err = f.uc.Execute(ctx, validRequest("11:50-12:10"))
	assert.NoError(t, err)

	assert.Equal(t, 1, f.metrics.count(metrics.OutcomeConflict))
}

func TestExecute_CancelFreesSlot(t *testing.T) {
	f := newFixture(t, jsonfile.NewMemory())
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, validRequest("11:30-11:50"))
	require.NoError(t, err)

	_, err = f.store.UpdateStatus(ctx, first.ID, domain.StatusNew, domain.StatusCancelled, fixedNow)
	require.NoError(t, err)

	second, err := f.uc.Execute(ctx, validRequest("11:30-11:50"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestExecute_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:    "missing parent name wins over bad date and slot",
			mutate:  func(r *Request) { r.ParentName = " "; r.Date = saturday.AddDate(0, 0, 1); r.Slot = "10:00-10:20" },
			wantErr: ErrMissingField,
		},
		{
			name:    "missing date",
			mutate:  func(r *Request) { r.Date = time.Time{} },
			wantErr: ErrMissingField,
		},
		{
			name:    "wrong weekday wins over bad slot",
			mutate:  func(r *Request) { r.Date = saturday.AddDate(0, 0, 1); r.Slot = "10:00-10:20" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "slot outside calendar",
			mutate:  func(r *Request) { r.Slot = "10:00-10:20" },
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "slot not aligned with calendar",
			mutate:  func(r *Request) { r.Slot = "11:40-12:00" },
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "malformed slot",
			mutate:  func(r *Request) { r.Slot = "11:30" },
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "trailing partial slot",
			mutate:  func(r *Request) { r.Slot = "12:50-13:10" },
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "unknown teacher",
			mutate:  func(r *Request) { r.TeacherID = "sidorov" },
			wantErr: ErrTeacherNotFound,
		},
		{
			name: "comment too long",
			mutate: func(r *Request) {
				long := make([]rune, domain.MaxCommentLength+1)
				for i := range long {
					long[i] = 'я'
				}
				r.Comment = string(long)
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, jsonfile.NewMemory())
			req := validRequest("11:30-11:50")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)

			list, err := f.store.List(context.Background(), domain.BookingFilter{})
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestExecute_InvalidSlotRegardlessOfOccupancy(t *testing.T) {
	f := newFixture(t, jsonfile.NewMemory())
	ctx := context.Background()

	for _, slot := range []string{"11:30-11:50", "11:50-12:10", "12:10-12:30", "12:30-12:50"} {
		_, err := f.uc.Execute(ctx, validRequest(slot))
		require.NoError(t, err)
	}

	_, err := f.uc.Execute(ctx, validRequest("10:00-10:20"))
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_ConcurrentSameSlotSingleWinner(t *testing.T) {
	f := newFixture(t, jsonfile.NewMemory())

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.uc.Execute(context.Background(), validRequest("12:10-12:30"))
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotTaken)
	}
	assert.Equal(t, 1, succeeded)

	active, err := f.store.List(context.Background(), domain.BookingFilter{
		TeacherID:        ptr.Ptr("ivanova"),
		Date:             ptr.Ptr(saturday),
		ExcludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestExecute_StoreReportsUniquenessViolation(t *testing.T) {
	inner := jsonfile.NewMemory()
	f := newFixture(t, racyStore{Store: inner})
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, validRequest("11:30-11:50"))
	require.NoError(t, err)

	// Занятость "не видна", но хранилище само отвергает дубль
	_, err = f.uc.Execute(ctx, validRequest("11:30-11:50"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	list, err := inner.List(ctx, domain.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	f := newFixture(t, &failingStore{err: context.DeadlineExceeded})

	_, err := f.uc.Execute(context.Background(), validRequest("11:30-11:50"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.publisher.events)
	assert.Equal(t, 1, f.metrics.count(metrics.OutcomeStoreUnavailable))
}

func TestExecute_LockWaitHonoursDeadline(t *testing.T) {
	teachers, err := teacher.NewRepository([]domain.Teacher{{ID: "ivanova", Name: "Иванова"}})
	require.NoError(t, err)

	store := jsonfile.NewMemory()
	log := logger.NewNop()
	locker := keylock.New()
	resolver := get_available_slots.NewUseCase(store, teachers, domain.DefaultSchedule(), time.Second, log)
	uc := NewUseCase(store, resolver, teachers, txmanager.Nop{}, locker, events.NopPublisher{},
		(*metrics.Metrics)(nil), domain.DefaultSchedule(), 50*time.Millisecond, log)

	unlock, err := locker.Lock(context.Background(), lockKey("ivanova", saturday.Format(domain.DateFormat)))
	require.NoError(t, err)
	defer unlock()

	_, err = uc.Execute(context.Background(), validRequest("11:30-11:50"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	list, err := store.List(context.Background(), domain.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExecute_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t, jsonfile.NewMemory())
	f.publisher.err = errors.New("broker down")

	_, err := f.uc.Execute(context.Background(), validRequest("11:30-11:50"))
	assert.NoError(t, err)
}

// concurrentInstanceTx имитирует транзакцию, проигравшую параллельной записи с другого экземпляра:
// before выполняется "чужая" запись, затем транзакция прерывается ошибкой сериализации
type concurrentInstanceTx struct {
	before func(ctx context.Context)
}

func (c concurrentInstanceTx) DoSerializable(ctx context.Context, _ func(ctx context.Context) error) error {
	if c.before != nil {
		c.before(ctx)
	}
	return fmt.Errorf("%w: could not serialize access", txmanager.ErrSerialization)
}

func TestExecute_SerializationFailure(t *testing.T) {
	t.Run("slot taken by the other instance is a conflict", func(t *testing.T) {
		f := newFixture(t, jsonfile.NewMemory())
		f.uc.txManager = concurrentInstanceTx{before: func(ctx context.Context) {
			_, err := f.store.Create(ctx, &domain.Booking{
				TeacherID:    "ivanova",
				Date:         saturday,
				Slot:         domain.Slot{Start: "11:30", End: "11:50"},
				Status:       domain.StatusNew,
				ParentName:   "Петрова Ольга",
				StudentName:  "Петрова Маша",
				StudentClass: "6Б",
				Phone:        "+78880000000",
				CreatedAt:    fixedNow,
				UpdatedAt:    fixedNow,
			})
			require.NoError(t, err)
		}}

		_, err := f.uc.Execute(context.Background(), validRequest("11:30-11:50"))

		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.NotContains(t, conflict.FreeSlots, conflict.Slot)
		assert.Len(t, conflict.FreeSlots, 3)
		assert.Equal(t, 1, f.metrics.count(metrics.OutcomeConflict))
		assert.Empty(t, f.publisher.events)
	})

	t.Run("slot still free is store unavailable", func(t *testing.T) {
		f := newFixture(t, jsonfile.NewMemory())
		f.uc.txManager = concurrentInstanceTx{}

		_, err := f.uc.Execute(context.Background(), validRequest("11:30-11:50"))

		assert.ErrorIs(t, err, ErrStoreUnavailable)
		assert.NotErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, 1, f.metrics.count(metrics.OutcomeStoreUnavailable))
	})
}
