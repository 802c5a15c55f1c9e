package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	"github.com/m04kA/PTM-BookingService/internal/infra/storage/jsonfile"
	"github.com/m04kA/PTM-BookingService/internal/infra/storage/teacher"
	"github.com/m04kA/PTM-BookingService/internal/integrations/events"
	"github.com/m04kA/PTM-BookingService/internal/service/bookings/models"
	"github.com/m04kA/PTM-BookingService/pkg/logger"
	"github.com/m04kA/PTM-BookingService/pkg/ptr"
)

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

type downStore struct{}

func (downStore) List(context.Context, domain.BookingFilter) ([]*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func (downStore) GetByID(context.Context, int64) (*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func (downStore) Delete(context.Context, int64) error {
	return errors.New("connection refused")
}

type fixture struct {
	store     *jsonfile.Store
	publisher *recordingPublisher
	service   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	teachers, err := teacher.NewRepository([]domain.Teacher{
		{ID: "ivanova", Name: "Иванова М.П.", Room: "204"},
		{ID: "petrov", Name: "Петров С.А.", Room: "101"},
	})
	require.NoError(t, err)

	f := &fixture{store: jsonfile.NewMemory(), publisher: &recordingPublisher{}}
	f.service = NewService(f.store, teachers, f.publisher, time.Second, logger.NewNop())
	return f
}

func (f *fixture) seed(t *testing.T, teacherID, date, slot string, status domain.BookingStatus, createdAt time.Time) *domain.Booking {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, date)
	require.NoError(t, err)
	s, err := domain.ParseSlot(slot)
	require.NoError(t, err)

	b, err := f.store.Create(context.Background(), &domain.Booking{
		TeacherID:    teacherID,
		Date:         d,
		Slot:         s,
		Status:       status,
		ParentName:   "Родитель",
		StudentName:  "Ученик",
		StudentClass: "7Б",
		Phone:        "+79990000000",
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	})
	require.NoError(t, err)
	return b
}

func TestList_Filters(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	f.seed(t, "ivanova", "2024-06-15", "11:30-11:50", domain.StatusNew, base)
	f.seed(t, "ivanova", "2024-06-22", "11:30-11:50", domain.StatusConfirmed, base)
	f.seed(t, "petrov", "2024-06-15", "11:50-12:10", domain.StatusNew, base)

	tests := []struct {
		name string
		req  *models.ListBookingsRequest
		want int
	}{
		{"all", &models.ListBookingsRequest{}, 3},
		{"by teacher", &models.ListBookingsRequest{TeacherID: ptr.Ptr("ivanova")}, 2},
		{"by date", &models.ListBookingsRequest{Date: ptr.Ptr("2024-06-15")}, 2},
		{"by legacy status", &models.ListBookingsRequest{Status: ptr.Ptr("подтверждена")}, 1},
		{"combined", &models.ListBookingsRequest{TeacherID: ptr.Ptr("petrov"), Status: ptr.Ptr("NEW")}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.service.List(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Len(t, resp.Bookings, tt.want)
		})
	}
}

func TestList_ResolvesTeacherNames(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "ivanova", "2024-06-15", "11:30-11:50", domain.StatusNew, time.Now())
	f.seed(t, "retired", "2024-06-15", "11:30-11:50", domain.StatusNew, time.Now())

	resp, err := f.service.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)

	byTeacher := map[string]models.BookingResponse{}
	for _, b := range resp.Bookings {
		byTeacher[b.TeacherID] = b
	}
	assert.Equal(t, "Иванова М.П.", byTeacher["ivanova"].TeacherName)
	assert.Equal(t, "204", byTeacher["ivanova"].TeacherRoom)
	assert.Empty(t, byTeacher["retired"].TeacherName)
}

func TestList_InvalidFilter(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.List(context.Background(), &models.ListBookingsRequest{Date: ptr.Ptr("15.06.2024")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.service.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAndDelete(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t, "ivanova", "2024-06-15", "11:30-11:50", domain.StatusNew, time.Now())

	got, err := f.service.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "11:30-11:50", got.SelectedTime)

	require.NoError(t, f.service.Delete(context.Background(), b.ID))
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.BookingDeleted, f.publisher.events[0].Type)

	_, err = f.service.GetByID(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, f.service.Delete(context.Background(), b.ID), ErrBookingNotFound)
	assert.ErrorIs(t, f.service.Delete(context.Background(), 0), ErrInvalidInput)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*i).Format(domain.DateFormat)
		f.seed(t, "ivanova", date, "11:30-11:50", domain.StatusNew, base.Add(time.Duration(i)*time.Hour))
	}
	f.seed(t, "petrov", "2024-06-15", "11:30-11:50", domain.StatusCancelled, base.Add(-time.Hour))

	stats, err := f.service.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 13, stats.Total)
	assert.Equal(t, 12, stats.ByStatus["NEW"])
	assert.Equal(t, 1, stats.ByStatus["CANCELLED"])
	assert.Equal(t, 0, stats.ByStatus["COMPLETED"])

	require.Len(t, stats.ByTeacher, 2)
	assert.Equal(t, models.TeacherCount{TeacherID: "ivanova", TeacherName: "Иванова М.П.", Count: 12}, stats.ByTeacher[0])

	require.Len(t, stats.Recent, domain.RecentBookings)
	assert.Equal(t, base.Add(11*time.Hour), stats.Recent[0].CreatedAt)
}

func TestStoreUnavailable(t *testing.T) {
	teachers, err := teacher.NewRepository(nil)
	require.NoError(t, err)
	s := NewService(downStore{}, teachers, events.NopPublisher{}, time.Second, logger.NewNop())

	_, err = s.List(context.Background(), &models.ListBookingsRequest{})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = s.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = s.Stats(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
