package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

func TestRepository_GetByUsername(t *testing.T) {
	repo := NewRepository(
		domain.User{ID: 1, Username: "admin", PasswordHash: "old", Role: domain.RoleAdmin},
		domain.User{Username: ""},
	)
	repo.Add(domain.User{ID: 1, Username: "admin", PasswordHash: "new", Role: domain.RoleAdmin})

	got, err := repo.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "new", got.PasswordHash)

	_, err = repo.GetByUsername(context.Background(), "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
