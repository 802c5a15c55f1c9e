package jsonfile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

// document формат файла: {"bookings": [...], "users": [...]}
type document struct {
	Bookings []bookingRecord `json:"bookings"`
	Users    []userRecord    `json:"users"`
}

type bookingRecord struct {
	ID           int64     `json:"id"`
	TeacherID    string    `json:"teacherId,omitempty"`
	Teacher      string    `json:"teacher,omitempty"` // старый формат: "Имя|Кабинет"
	TeacherName  string    `json:"teacherName,omitempty"`
	TeacherRoom  string    `json:"teacherRoom,omitempty"`
	Date         string    `json:"date"`
	SelectedTime string    `json:"selectedTime"`
	Status       string    `json:"status"`
	ParentName   string    `json:"parentName"`
	StudentName  string    `json:"studentName"`
	StudentClass string    `json:"studentClass"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type userRecord struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"` // bcrypt хеш
	Role     string `json:"role"`
}

func toRecord(b *domain.Booking) bookingRecord {
	return bookingRecord{
		ID:           b.ID,
		TeacherID:    b.TeacherID,
		Date:         b.Date.Format(domain.DateFormat),
		SelectedTime: b.Slot.String(),
		Status:       string(b.Status),
		ParentName:   b.ParentName,
		StudentName:  b.StudentName,
		StudentClass: b.StudentClass,
		Phone:        b.Phone,
		Email:        b.Email,
		Comment:      b.Comment,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// unknownRoom подпись кабинета в старых записях, когда он не указан
const unknownRoom = "не указан"

// resolveTeacherID возвращает ID учителя; записи старого формата без teacherId
// сопоставляются со справочником по имени и кабинету
func (r bookingRecord) resolveTeacherID(ctx context.Context, teachers TeacherResolver) (string, error) {
	if id := strings.TrimSpace(r.TeacherID); id != "" {
		return id, nil
	}

	name, room := r.TeacherName, r.TeacherRoom
	if r.Teacher != "" {
		parts := strings.SplitN(r.Teacher, "|", 2)
		name = parts[0]
		room = ""
		if len(parts) == 2 {
			room = parts[1]
		}
	}
	name = strings.TrimSpace(name)
	room = strings.TrimSpace(room)
	if room == unknownRoom {
		room = ""
	}

	if name == "" {
		return "", fmt.Errorf("%w: booking %d: teacher is missing", ErrInvalidRecord, r.ID)
	}
	if teachers == nil {
		return "", fmt.Errorf("%w: booking %d: teacher %q cannot be resolved without a directory", ErrInvalidRecord, r.ID, name)
	}

	t, err := teachers.FindByLabel(ctx, name, room)
	if err != nil {
		return "", fmt.Errorf("%w: booking %d: teacher %q room %q: %v", ErrInvalidRecord, r.ID, name, room, err)
	}
	return t.ID, nil
}

// toDomain разбирает запись. Статусы старого формата ("новая", ...) приводятся к каноническим
func (r bookingRecord) toDomain(ctx context.Context, teachers TeacherResolver) (*domain.Booking, error) {
	teacherID, err := r.resolveTeacherID(ctx, teachers)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %d: date %q: %v", ErrInvalidRecord, r.ID, r.Date, err)
	}

	slot, err := domain.ParseSlot(r.SelectedTime)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %d: slot %q: %v", ErrInvalidRecord, r.ID, r.SelectedTime, err)
	}

	status, err := domain.ParseBookingStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %d: status %q: %v", ErrInvalidRecord, r.ID, r.Status, err)
	}

	updatedAt := r.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = r.CreatedAt
	}

	return &domain.Booking{
		ID:           r.ID,
		TeacherID:    teacherID,
		Date:         domain.DateOnly(date),
		Slot:         slot,
		Status:       status,
		ParentName:   r.ParentName,
		StudentName:  r.StudentName,
		StudentClass: r.StudentClass,
		Phone:        r.Phone,
		Email:        r.Email,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func (u userRecord) toDomain() domain.User {
	return domain.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.Password,
		Role:         u.Role,
	}
}
