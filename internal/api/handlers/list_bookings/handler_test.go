package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTM-BookingService/internal/service/bookings"
	"github.com/m04kA/PTM-BookingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	got  *models.ListBookingsRequest
	resp *models.BookingListResponse
	err  error
}

func (s *stubService) List(_ context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.got = req
	return s.resp, s.err
}

func TestHandle_PassesFilters(t *testing.T) {
	svc := &stubService{resp: &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}}}}

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/bookings?teacherId=ivanova&status=NEW", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.TeacherID)
	assert.Equal(t, "ivanova", *svc.got.TeacherID)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "NEW", *svc.got.Status)
	assert.Nil(t, svc.got.Date)
	assert.JSONEq(t, `{"bookings":[{"id":1,"teacherId":"","date":"","selectedTime":"","status":"",
		"parentName":"","studentName":"","studentClass":"","phone":"",
		"createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"}]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad filter", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"store down", bookings.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&stubService{err: tt.err}, nopLogger{}).Handle(rec,
				httptest.NewRequest(http.MethodGet, "/api/v1/bookings?date=yesterday", nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
