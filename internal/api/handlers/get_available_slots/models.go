package get_available_slots

import (
	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ClassroomService/internal/usecase/get_available_slots"
)

// SlotResponse один слот сетки доступности
type SlotResponse struct {
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`   // "10:15"
	Available bool    `json:"available"`
	BookingID *int64  `json:"bookingId,omitempty"`
	BookedBy  *string `json:"bookedBy,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ClassroomID    int64          `json:"classroomId"`
	Date           string         `json:"date"`
	SlotDuration   int            `json:"slotDurationMinutes"`
	OperatingStart string         `json:"operatingStart"`
	OperatingEnd   string         `json:"operatingEnd"`
	Slots          []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Available: slot.Available,
			BookingID: slot.BookingID,
			BookedBy:  slot.BookedBy,
			Status:    slot.Status,
		}
	}

	return &AvailableSlotsResponse{
		ClassroomID:    resp.ClassroomID,
		Date:           resp.Date.Format(domain.DateFormat),
		SlotDuration:   resp.SlotDuration,
		OperatingStart: resp.OperatingStart.String(),
		OperatingEnd:   resp.OperatingEnd.String(),
		Slots:          slots,
	}
}
