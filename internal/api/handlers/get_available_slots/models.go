package get_available_slots

import (
	"github.com/m04kA/PTM-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/PTM-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	TeacherID string          `json:"teacherId"`
	Date      string          `json:"date"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot слот календаря и его доступность
type AvailableSlot struct {
	Time      string `json:"time"` // "11:30-11:50"
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:      slot.Slot.String(),
			Start:     slot.Slot.Start.String(),
			End:       slot.Slot.End.String(),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		TeacherID: resp.TeacherID,
		Date:      resp.Date.Format(domain.DateFormat),
		Slots:     slots,
	}
}
