package teachers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	"github.com/m04kA/PTM-BookingService/internal/infra/storage/teacher"
	"github.com/m04kA/PTM-BookingService/internal/service/teachers/models"
	"github.com/m04kA/PTM-BookingService/pkg/logger"
)

func TestList(t *testing.T) {
	repo, err := teacher.NewRepository([]domain.Teacher{
		{ID: "ivanova", Name: "Иванова М.П.", Room: "204"},
		{ID: "petrov", Name: "Петров С.А."},
	})
	require.NoError(t, err)

	resp, err := NewService(repo, logger.NewNop()).List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.TeacherResponse{
		{ID: "ivanova", Name: "Иванова М.П.", Room: "204"},
		{ID: "petrov", Name: "Петров С.А."},
	}, resp.Teachers)
}
