package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

// Store хранилище бронирований в JSON документе
// Пустой путь - чисто in-memory вариант без записи на диск
// Все изменения выполняются под одной блокировкой, поэтому проверка занятости слота
// и вставка атомарны в пределах процесса
type Store struct {
	mu       sync.RWMutex
	path     string
	bookings []*domain.Booking
	users    []domain.User
	lastID   int64
	now      func() time.Time
}

// NewMemory создаёт in-memory хранилище
func NewMemory() *Store {
	return &Store{now: time.Now}
}

// Open открывает файл данных; если файла нет, он будет создан при первой записи
// teachers нужен для записей старого формата, где учитель указан подписью, а не ID
func Open(path string, teachers TeacherResolver) (*Store, error) {
	s := &Store{path: path, now: time.Now}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFile, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	for _, record := range doc.Bookings {
		b, err := record.toDomain(context.Background(), teachers)
		if err != nil {
			return nil, err
		}
		s.bookings = append(s.bookings, b)
		if b.ID > s.lastID {
			s.lastID = b.ID
		}
	}
	for _, u := range doc.Users {
		s.users = append(s.users, u.toDomain())
	}

	return s, nil
}

// Users возвращает учётные записи из документа
func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// List возвращает копии записей, подходящих под фильтр
func (s *Store) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if filter.Matches(b) {
			result = append(result, clone(b))
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		if result[i].Slot.Start != result[j].Slot.Start {
			return result[i].Slot.Start.IsBefore(result[j].Slot.Start)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// GetByID возвращает запись по ID
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return clone(s.bookings[i]), nil
	}
	return nil, ErrBookingNotFound
}

// Create добавляет запись, если слот свободен
func (s *Store) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if booking.IsActive() {
		for _, existing := range s.bookings {
			if existing.IsActive() && existing.SameSlot(booking.TeacherID, booking.Date, booking.Slot) {
				return nil, ErrSlotTaken
			}
		}
	}

	created := clone(booking)
	created.ID = s.nextID()

	s.bookings = append(s.bookings, created)
	if err := s.persist(); err != nil {
		s.bookings = s.bookings[:len(s.bookings)-1]
		return nil, err
	}

	booking.ID = created.ID
	return clone(created), nil
}

// UpdateStatus меняет статус, если текущий равен expected
func (s *Store) UpdateStatus(
	ctx context.Context,
	id int64,
	expected domain.BookingStatus,
	next domain.BookingStatus,
	updatedAt time.Time,
) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrBookingNotFound
	}

	current := s.bookings[i]
	if current.Status != expected {
		return nil, ErrStatusMismatch
	}

	updated := clone(current)
	updated.Status = next
	updated.UpdatedAt = updatedAt

	s.bookings[i] = updated
	if err := s.persist(); err != nil {
		s.bookings[i] = current
		return nil, err
	}

	return clone(updated), nil
}

// Delete удаляет запись
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrBookingNotFound
	}

	previous := s.bookings
	remaining := make([]*domain.Booking, 0, len(s.bookings)-1)
	remaining = append(remaining, s.bookings[:i]...)
	remaining = append(remaining, s.bookings[i+1:]...)

	s.bookings = remaining
	if err := s.persist(); err != nil {
		s.bookings = previous
		return err
	}

	return nil
}

func (s *Store) indexOf(id int64) int {
	for i, b := range s.bookings {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// nextID ID на основе времени в миллисекундах, строго возрастающий
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// persist записывает документ во временный файл и атомарно подменяет основной
// Вызывается под s.mu
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}

	doc := document{
		Bookings: make([]bookingRecord, 0, len(s.bookings)),
		Users:    make([]userRecord, 0, len(s.users)),
	}
	for _, b := range s.bookings {
		doc.Bookings = append(doc.Bookings, toRecord(b))
	}
	for _, u := range s.users {
		doc.Users = append(doc.Users, userRecord{ID: u.ID, Username: u.Username, Password: u.PasswordHash, Role: u.Role})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir: %v", ErrPersist, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", ErrPersist, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write: %v", ErrPersist, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync: %v", ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close: %v", ErrPersist, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename: %v", ErrPersist, err)
	}

	return nil
}

func clone(b *domain.Booking) *domain.Booking {
	c := *b
	return &c
}
