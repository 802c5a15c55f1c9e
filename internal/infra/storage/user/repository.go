package user

import (
	"context"
	"sync"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

// Repository in-memory хранилище учётных записей
// Наполняется при старте из конфигурации и JSON документа
type Repository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewRepository создает хранилище. При совпадении логинов побеждает последний
func NewRepository(users ...domain.User) *Repository {
	r := &Repository{users: make(map[string]domain.User, len(users))}
	for _, u := range users {
		r.Add(u)
	}
	return r
}

// Add добавляет или заменяет пользователя
func (r *Repository) Add(u domain.User) {
	if u.Username == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.Username] = u
}

// GetByUsername возвращает пользователя по логину
func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}
