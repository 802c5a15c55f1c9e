package domain

import "time"

// Окно приёма по умолчанию: суббота 11:30-13:00, слоты по 20 минут
const (
	DefaultWindowStart         = "11:30"
	DefaultWindowEnd           = "13:00"
	DefaultSlotDurationMinutes = 20
	DefaultWeekday             = time.Saturday
)

// Ограничения на входные данные
const (
	MaxNameLength    = 200
	MaxCommentLength = 1000
	RecentBookings   = 10
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses все допустимые статусы в порядке жизненного цикла
var AllStatuses = []BookingStatus{
	StatusNew,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}
