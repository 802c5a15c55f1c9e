package get_available_slots

import (
	"time"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	TeacherID string    // ID учителя из справочника
	Date      time.Time // Дата приёма (без времени)
}

// Response модель ответа со всеми слотами дня
type Response struct {
	TeacherID string
	Date      time.Time
	Slots     []Slot // В порядке календаря
}

// Slot слот календаря с признаком занятости
type Slot struct {
	Slot      domain.Slot
	Available bool
}
