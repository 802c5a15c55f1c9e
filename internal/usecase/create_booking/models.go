package create_booking

import (
	"time"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

// Request черновик записи от родителя
type Request struct {
	TeacherID    string    // ID учителя из справочника
	Date         time.Time // Дата приёма (без времени)
	Slot         string    // Слот в формате "HH:MM-HH:MM"
	ParentName   string
	StudentName  string
	StudentClass string
	Phone        string
	Email        string // опционально
	Comment      string // опционально
}

// Response модель ответа с созданной записью
type Response struct {
	ID           int64
	TeacherID    string
	Date         time.Time
	Slot         domain.Slot
	Status       domain.BookingStatus
	ParentName   string
	StudentName  string
	StudentClass string
	Phone        string
	Email        string
	Comment      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:           b.ID,
		TeacherID:    b.TeacherID,
		Date:         b.Date,
		Slot:         b.Slot,
		Status:       b.Status,
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
