package delete_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/PTM-BookingService/internal/service/bookings"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	deleted []int64
	err     error
}

func (s *stubService) Delete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func del(h *Handler, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	rec := del(NewHandler(svc, nopLogger{}), "15")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{15}, svc.deleted)

	tests := []struct {
		name string
		id   string
		err  error
		want int
	}{
		{"bad id", "0", nil, http.StatusBadRequest},
		{"not found", "15", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"store down", "15", bookings.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := del(NewHandler(&stubService{err: tt.err}, nopLogger{}), tt.id)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
