package list_teachers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	teacherRepo "github.com/m04kA/PTM-BookingService/internal/infra/storage/teacher"
	"github.com/m04kA/PTM-BookingService/internal/service/teachers"
	"github.com/m04kA/PTM-BookingService/pkg/logger"
)

func TestHandle(t *testing.T) {
	repo, err := teacherRepo.NewRepository([]domain.Teacher{
		{ID: "ivanova", Name: "Иванова М.П.", Room: "204"},
		{ID: "petrov", Name: "Петров С.А."},
	})
	require.NoError(t, err)

	log := logger.NewNop()
	h := NewHandler(teachers.NewService(repo, log), log)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/teachers", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"teachers":[
		{"id":"ivanova","name":"Иванова М.П.","room":"204"},
		{"id":"petrov","name":"Петров С.А."}
	]}`, rec.Body.String())
}
