package teacher

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

// Repository справочник учителей, загружается из конфигурации и не меняется во время работы
type Repository struct {
	teachers []domain.Teacher
	byID     map[string]domain.Teacher
}

// NewRepository создает справочник, проверяя уникальность и заполненность ID
func NewRepository(teachers []domain.Teacher) (*Repository, error) {
	r := &Repository{
		teachers: make([]domain.Teacher, 0, len(teachers)),
		byID:     make(map[string]domain.Teacher, len(teachers)),
	}

	for _, t := range teachers {
		t.ID = strings.TrimSpace(t.ID)
		t.Name = strings.TrimSpace(t.Name)
		t.Room = strings.TrimSpace(t.Room)

		if t.ID == "" || t.Name == "" {
			return nil, fmt.Errorf("%w: id=%q name=%q", ErrInvalidTeacher, t.ID, t.Name)
		}
		if _, exists := r.byID[t.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTeacher, t.ID)
		}

		r.byID[t.ID] = t
		r.teachers = append(r.teachers, t)
	}

	return r, nil
}

// List возвращает учителей в порядке конфигурации
func (r *Repository) List(_ context.Context) ([]domain.Teacher, error) {
	out := make([]domain.Teacher, len(r.teachers))
	copy(out, r.teachers)
	return out, nil
}

// GetByID возвращает учителя по ID
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Teacher, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, ErrTeacherNotFound
	}
	return &t, nil
}

// FindByLabel ищет учителя по имени и кабинету в том виде, в каком они записаны в старых
// файлах данных ("Имя|Кабинет"). Пустой кабинет подходит к любому, но тогда имя должно быть уникальным
func (r *Repository) FindByLabel(_ context.Context, name, room string) (*domain.Teacher, error) {
	name = strings.TrimSpace(name)
	room = strings.TrimSpace(room)
	if name == "" {
		return nil, ErrTeacherNotFound
	}

	var found *domain.Teacher
	for i := range r.teachers {
		t := r.teachers[i]
		if !strings.EqualFold(t.Name, name) {
			continue
		}
		if room != "" && !strings.EqualFold(t.Room, room) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %q", ErrAmbiguousTeacher, name)
		}
		found = &t
	}

	if found == nil {
		return nil, ErrTeacherNotFound
	}
	return found, nil
}
