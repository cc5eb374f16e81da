package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ActivityService/internal/usecase/get_availability"
)

// SlotResponse модель слота в HTTP ответе
type SlotResponse struct {
	SlotStart         string `json:"slotStart"` // ISO 8601, дата + время
	StartTime         string `json:"time"`      // "10:00", время начала внутри дня
	DurationMinutes   int    `json:"durationMinutes"`
	CapacityTotal     int    `json:"capacityTotal"`
	CapacityBooked    int    `json:"capacityBooked"`
	RemainingCapacity int    `json:"remainingCapacity"`
	Available         bool   `json:"available"`
}

// Response модель HTTP ответа со слотами на дату
type Response struct {
	ActivityID int64          `json:"activityId"`
	Date       string         `json:"date"` // "2026-09-15"
	PartySize  int            `json:"partySize"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *getAvailability.Response) *Response {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			SlotStart:         slot.SlotStart.Format(time.RFC3339),
			StartTime:         string(slot.StartTime),
			DurationMinutes:   slot.DurationMinutes,
			CapacityTotal:     slot.CapacityTotal,
			CapacityBooked:    slot.CapacityBooked,
			RemainingCapacity: slot.RemainingCapacity,
			Available:         slot.Available,
		})
	}

	return &Response{
		ActivityID: resp.ActivityID,
		Date:       resp.Date.Format(domain.DateFormat),
		PartySize:  resp.PartySize,
		Slots:      slots,
	}
}
