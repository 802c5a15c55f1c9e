package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTM-BookingService/pkg/types"
)

func slotStrings(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestGenerateSlots_DefaultWindow(t *testing.T) {
	slots, err := DefaultSlotWindow().GenerateSlots()
	require.NoError(t, err)

	// Пятый слот закончился бы в 13:10 и отбрасывается
	assert.Equal(t, []string{"11:30-11:50", "11:50-12:10", "12:10-12:30", "12:30-12:50"}, slotStrings(slots))
}

func TestGenerateSlots_Properties(t *testing.T) {
	windows := []SlotWindow{
		{Start: "11:30", End: "13:00", DurationMinutes: 20},
		{Start: "09:00", End: "10:00", DurationMinutes: 15},
		{Start: "09:00", End: "10:00", DurationMinutes: 60},
		{Start: "09:00", End: "10:00", DurationMinutes: 7},
		{Start: "22:00", End: "23:59", DurationMinutes: 45},
		{Start: "10:00", End: "10:10", DurationMinutes: 30},
	}

	for _, w := range windows {
		t.Run(w.Start.String()+"-"+w.End.String(), func(t *testing.T) {
			slots, err := w.GenerateSlots()
			require.NoError(t, err)

			for i, s := range slots {
				assert.Equal(t, w.DurationMinutes, s.DurationMinutes())
				assert.False(t, s.End.IsAfter(w.End), "slot %s ends after window", s)
				if i == 0 {
					assert.Equal(t, w.Start, s.Start)
				} else {
					// без разрывов и наложений
					assert.Equal(t, slots[i-1].End, s.Start)
				}
			}

			// следующий слот уже не помещается
			var next types.TimeString = w.Start
			if len(slots) > 0 {
				next = slots[len(slots)-1].End
			}
			end, err := next.AddMinutes(w.DurationMinutes)
			if err == nil {
				assert.True(t, end.IsAfter(w.End))
			}
		})
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	w := DefaultSlotWindow()
	first, err := w.GenerateSlots()
	require.NoError(t, err)
	second, err := w.GenerateSlots()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateSlots_InvalidWindow(t *testing.T) {
	tests := []SlotWindow{
		{Start: "11:30", End: "13:00", DurationMinutes: 0},
		{Start: "13:00", End: "11:30", DurationMinutes: 20},
		{Start: "bad", End: "13:00", DurationMinutes: 20},
	}
	for _, w := range tests {
		_, err := w.GenerateSlots()
		assert.ErrorIs(t, err, ErrInvalidSlotWindow)
	}
}

func TestSlotWindow_Contains(t *testing.T) {
	w := DefaultSlotWindow()

	ok, err := w.Contains(Slot{Start: "11:50", End: "12:10"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = w.Contains(Slot{Start: "10:00", End: "10:20"})
	require.NoError(t, err)
	assert.False(t, ok)

	// Слот в пределах окна, но не по сетке
	ok, err = w.Contains(Slot{Start: "11:40", End: "12:00"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = w.Contains(Slot{Start: "12:50", End: "13:10"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseSlot(t *testing.T) {
	slot, err := ParseSlot("11:30-11:50")
	require.NoError(t, err)
	assert.Equal(t, Slot{Start: "11:30", End: "11:50"}, slot)

	slot, err = ParseSlot("11:30 - 11:50")
	require.NoError(t, err)
	assert.Equal(t, "11:30-11:50", slot.String())

	for _, bad := range []string{"", "11:30", "11:50-11:30", "aa-bb", "11:30-11:50-12:10"} {
		_, err := ParseSlot(bad)
		assert.ErrorIs(t, err, ErrInvalidSlotFormat, bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}
