package domain

import (
	"fmt"
	"strings"

	"github.com/m04kA/PTM-BookingService/pkg/types"
)

// Slot интервал приёма [Start, End)
type Slot struct {
	Start types.TimeString
	End   types.TimeString
}

// String возвращает каноническое представление "HH:MM-HH:MM"
func (s Slot) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// ParseSlot разбирает строку "HH:MM-HH:MM" (пробелы вокруг дефиса допускаются)
func ParseSlot(s string) (Slot, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Slot{}, fmt.Errorf("%w: %q", ErrInvalidSlotFormat, s)
	}

	start, err := types.NewTimeStringFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q", ErrInvalidSlotFormat, s)
	}
	end, err := types.NewTimeStringFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q", ErrInvalidSlotFormat, s)
	}
	if !start.IsBefore(end) {
		return Slot{}, fmt.Errorf("%w: %q ends before it starts", ErrInvalidSlotFormat, s)
	}

	return Slot{Start: start, End: end}, nil
}

// DurationMinutes длительность слота в минутах
func (s Slot) DurationMinutes() int {
	start, errStart := s.Start.Minutes()
	end, errEnd := s.End.Minutes()
	if errStart != nil || errEnd != nil {
		return 0
	}
	return end - start
}

// SlotWindow окно приёма, из которого нарезаются слоты
type SlotWindow struct {
	Start           types.TimeString
	End             types.TimeString
	DurationMinutes int
}

// DefaultSlotWindow окно 11:30-13:00 по 20 минут
func DefaultSlotWindow() SlotWindow {
	return SlotWindow{
		Start:           DefaultWindowStart,
		End:             DefaultWindowEnd,
		DurationMinutes: DefaultSlotDurationMinutes,
	}
}

// Validate проверяет корректность окна
func (w SlotWindow) Validate() error {
	if w.DurationMinutes <= 0 {
		return fmt.Errorf("%w: slot duration must be positive, got %d", ErrInvalidSlotWindow, w.DurationMinutes)
	}
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidSlotWindow, err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidSlotWindow, err)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidSlotWindow, w.Start, w.End)
	}
	return nil
}

// GenerateSlots нарезает окно на слоты фиксированной длительности
// Слоты идут от Start с шагом DurationMinutes; слот, который заканчивается позже End,
// отбрасывается целиком (неполный хвост не обрезается)
func (w SlotWindow) GenerateSlots() ([]Slot, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	slots := make([]Slot, 0)
	current := w.Start

	for current.IsBefore(w.End) {
		end, err := current.AddMinutes(w.DurationMinutes)
		if err != nil {
			// Следующий слот перешёл бы через полночь, значит он точно за пределами окна
			break
		}
		if end.IsAfter(w.End) {
			break
		}

		slots = append(slots, Slot{Start: current, End: end})
		current = end
	}

	return slots, nil
}

// Contains проверяет, что слот входит в сетку окна
func (w SlotWindow) Contains(slot Slot) (bool, error) {
	slots, err := w.GenerateSlots()
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s == slot {
			return true, nil
		}
	}
	return false, nil
}
