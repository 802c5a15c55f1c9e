package models

import (
	"fmt"
	"time"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

// Request модели

// ListBookingsRequest фильтры админского списка
type ListBookingsRequest struct {
	TeacherID *string `json:"teacherId,omitempty"`
	Date      *string `json:"date,omitempty"`   // "2025-03-15"
	Status    *string `json:"status,omitempty"` // канонический или русский статус
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{TeacherID: r.TeacherID}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return filter, fmt.Errorf("date must be in format YYYY-MM-DD: %v", err)
		}
		filter.Date = &date
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64  `json:"id"`
	TeacherID    string `json:"teacherId"`
	TeacherName  string `json:"teacherName,omitempty"`
	TeacherRoom  string `json:"teacherRoom,omitempty"`
	Date         string `json:"date"`         // "2025-03-15"
	SelectedTime string `json:"selectedTime"` // "11:30-11:50"
	Status       string `json:"status"`

	ParentName   string `json:"parentName"`
	StudentName  string `json:"studentName"`
	StudentClass string `json:"studentClass"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Comment      string `json:"comment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// TeacherCount количество записей к учителю
type TeacherCount struct {
	TeacherID   string `json:"teacherId"`
	TeacherName string `json:"teacherName,omitempty"`
	Count       int    `json:"count"`
}

// StatsResponse сводка для админки
type StatsResponse struct {
	Total     int               `json:"total"`
	ByStatus  map[string]int    `json:"byStatus"`
	ByTeacher []TeacherCount    `json:"byTeacher"`
	Recent    []BookingResponse `json:"recentBookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// Имя и кабинет учителя подставляются из справочника, если учитель в нём есть
func FromDomainBooking(b *domain.Booking, teachers map[string]domain.Teacher) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
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

	if t, ok := teachers[b.TeacherID]; ok {
		resp.TeacherName = t.Name
		resp.TeacherRoom = t.Room
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, teachers map[string]domain.Teacher) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, teachers); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
