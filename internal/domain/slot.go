package domain

import (
	"time"

	"github.com/m04kA/SMC-ActivityService/pkg/types"
)

// Slot is a derived bookable time window for a concrete date
// Never persisted - recomputed from the template and the booking ledger
// on every resolution
type Slot struct {
	SlotStart         time.Time        // Абсолютное время начала (дата + время)
	StartTime         types.TimeString // Время начала внутри дня
	DurationMinutes   int
	CapacityTotal     int
	CapacityBooked    int
	RemainingCapacity int
	Available         bool // Хватает ли места для запрошенного partySize и не в прошлом ли слот
}

// IsFull returns true if the slot has no remaining capacity
func (s *Slot) IsFull() bool {
	return s.RemainingCapacity <= 0
}
