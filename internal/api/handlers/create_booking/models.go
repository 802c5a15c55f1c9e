package create_booking

import (
	"time"

	"github.com/m04kA/PTM-BookingService/internal/api/handlers"
	"github.com/m04kA/PTM-BookingService/internal/domain"
	createBooking "github.com/m04kA/PTM-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TeacherID    string `json:"teacherId" validate:"required,max=100"`
	Date         string `json:"date" validate:"required"`         // "2025-03-15"
	SelectedTime string `json:"selectedTime" validate:"required"` // "11:30-11:50"
	ParentName   string `json:"parentName" validate:"required,max=200"`
	StudentName  string `json:"studentName" validate:"required,max=200"`
	StudentClass string `json:"studentClass" validate:"required,max=20"`
	Phone        string `json:"phone" validate:"required,max=50"`
	Email        string `json:"email,omitempty" validate:"omitempty,email,max=200"`
	Comment      string `json:"comment,omitempty" validate:"max=1000"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64  `json:"id"`
	TeacherID    string `json:"teacherId"`
	Date         string `json:"date"`
	SelectedTime string `json:"selectedTime"`
	Status       string `json:"status"`
	ParentName   string `json:"parentName"`
	StudentName  string `json:"studentName"`
	StudentClass string `json:"studentClass"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Comment      string `json:"comment,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// ConflictDetails тело 409: занятый слот и актуальные свободные
type ConflictDetails struct {
	SelectedTime string   `json:"selectedTime"`
	FreeSlots    []string `json:"freeSlots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		TeacherID:    r.TeacherID,
		Date:         date,
		Slot:         r.SelectedTime,
		ParentName:   r.ParentName,
		StudentName:  r.StudentName,
		StudentClass: r.StudentClass,
		Phone:        r.Phone,
		Email:        r.Email,
		Comment:      r.Comment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		TeacherID:    resp.TeacherID,
		Date:         resp.Date.Format(domain.DateFormat),
		SelectedTime: resp.Slot.String(),
		Status:       string(resp.Status),
		ParentName:   resp.ParentName,
		StudentName:  resp.StudentName,
		StudentClass: resp.StudentClass,
		Phone:        resp.Phone,
		Email:        resp.Email,
		Comment:      resp.Comment,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}

// FromConflictError собирает тело 409
func FromConflictError(conflict *createBooking.ConflictError) *ConflictDetails {
	free := make([]string, 0, len(conflict.FreeSlots))
	for _, slot := range conflict.FreeSlots {
		free = append(free, slot.String())
	}

	return &ConflictDetails{
		SelectedTime: conflict.Slot.String(),
		FreeSlots:    free,
	}
}
