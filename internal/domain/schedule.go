package domain

import (
	"fmt"
	"strings"
	"time"
)

// Schedule политика приёма: в какой день недели и в каком окне можно записаться
type Schedule struct {
	Window  SlotWindow
	Weekday time.Weekday
}

// DefaultSchedule суббота, 11:30-13:00, 20 минут
func DefaultSchedule() Schedule {
	return Schedule{
		Window:  DefaultSlotWindow(),
		Weekday: DefaultWeekday,
	}
}

// AllowsDate проверяет, что дата приходится на день приёма
func (s Schedule) AllowsDate(date time.Time) bool {
	return date.Weekday() == s.Weekday
}

// ParseWeekday разбирает название дня недели ("saturday", "Saturday", "sat")
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("domain: unknown weekday %q", s)
}

// DateOnly отбрасывает время суток, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
