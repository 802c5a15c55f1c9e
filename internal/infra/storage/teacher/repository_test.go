package teacher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

func TestNewRepository(t *testing.T) {
	tests := []struct {
		name     string
		teachers []domain.Teacher
		wantErr  error
	}{
		{
			name: "valid directory",
			teachers: []domain.Teacher{
				{ID: "ivanova", Name: "Иванова М.П.", Room: "204"},
				{ID: "petrov", Name: "Петров С.А."},
			},
		},
		{
			name:     "empty id",
			teachers: []domain.Teacher{{ID: " ", Name: "Без ID"}},
			wantErr:  ErrInvalidTeacher,
		},
		{
			name:     "empty name",
			teachers: []domain.Teacher{{ID: "x"}},
			wantErr:  ErrInvalidTeacher,
		},
		{
			name: "duplicate id",
			teachers: []domain.Teacher{
				{ID: "ivanova", Name: "Иванова"},
				{ID: "ivanova", Name: "Иванова 2"},
			},
			wantErr: ErrDuplicateTeacher,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRepository(tt.teachers)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRepository_Lookup(t *testing.T) {
	repo, err := NewRepository([]domain.Teacher{
		{ID: "ivanova", Name: "Иванова М.П.", Room: "204"},
		{ID: "petrov", Name: "Петров С.А.", Room: "101"},
	})
	require.NoError(t, err)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ivanova", list[0].ID)

	got, err := repo.GetByID(context.Background(), "petrov")
	require.NoError(t, err)
	assert.Equal(t, "101", got.Room)

	_, err = repo.GetByID(context.Background(), "sidorov")
	assert.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestRepository_FindByLabel(t *testing.T) {
	repo, err := NewRepository([]domain.Teacher{
		{ID: "ivanova", Name: "Иванова М.П.", Room: "204"},
		{ID: "petrov-101", Name: "Петров С.А.", Room: "101"},
		{ID: "petrov-305", Name: "Петров С.А.", Room: "305"},
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		label   string
		room    string
		wantID  string
		wantErr error
	}{
		{name: "name and room", label: "Иванова М.П.", room: "204", wantID: "ivanova"},
		{name: "name only, unique", label: " Иванова М.П. ", wantID: "ivanova"},
		{name: "room disambiguates", label: "Петров С.А.", room: "305", wantID: "petrov-305"},
		{name: "name only, ambiguous", label: "Петров С.А.", wantErr: ErrAmbiguousTeacher},
		{name: "wrong room", label: "Иванова М.П.", room: "999", wantErr: ErrTeacherNotFound},
		{name: "unknown name", label: "Сидоров", wantErr: ErrTeacherNotFound},
		{name: "empty name", label: "", room: "204", wantErr: ErrTeacherNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindByLabel(context.Background(), tt.label, tt.room)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}
