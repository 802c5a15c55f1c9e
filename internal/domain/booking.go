package domain

import "time"

// BookingStatus статус записи на приём
type BookingStatus string

const (
	StatusNew       BookingStatus = "NEW"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// Booking запись родителя на приём к учителю
type Booking struct {
	ID        int64
	TeacherID string
	Date      time.Time // только дата, время суток обнулено (см. DateOnly)
	Slot      Slot
	Status    BookingStatus

	// Контактные данные, ядром не интерпретируются
	ParentName   string
	StudentName  string
	StudentClass string
	Phone        string
	Email        string
	Comment      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись занимает слот (не отменена)
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// SameSlot возвращает true, если запись относится к тем же учителю, дате и слоту
func (b *Booking) SameSlot(teacherID string, date time.Time, slot Slot) bool {
	return b.TeacherID == teacherID && SameDay(b.Date, date) && b.Slot == slot
}

// BookingFilter фильтр для выборки записей
// Пустые поля не ограничивают выборку
type BookingFilter struct {
	TeacherID        *string
	Date             *time.Time
	Status           *BookingStatus
	ExcludeCancelled bool // только записи, занимающие слот
}

// Matches проверяет запись на соответствие фильтру
// Используется хранилищами без языка запросов
func (f BookingFilter) Matches(b *Booking) bool {
	if f.TeacherID != nil && b.TeacherID != *f.TeacherID {
		return false
	}
	if f.Date != nil && !SameDay(b.Date, *f.Date) {
		return false
	}
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	if f.ExcludeCancelled && !b.IsActive() {
		return false
	}
	return true
}

// SameDay проверяет, что две даты относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
