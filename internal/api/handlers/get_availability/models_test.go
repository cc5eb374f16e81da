package get_availability

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ActivityService/internal/usecase/get_availability"
)

func TestFromUseCaseResponse_SlotWireFormat(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	resp := FromUseCaseResponse(&getAvailability.Response{
		ActivityID: 10,
		Date:       date,
		PartySize:  2,
		Slots: []domain.Slot{
			{
				SlotStart:         time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
				StartTime:         "10:00",
				DurationMinutes:   60,
				CapacityTotal:     4,
				CapacityBooked:    3,
				RemainingCapacity: 1,
				Available:         false,
			},
		},
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded struct {
		ActivityID int64                    `json:"activityId"`
		Date       string                   `json:"date"`
		Slots      []map[string]interface{} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Slots, 1)

	slot := decoded.Slots[0]
	assert.Equal(t, "2026-09-15T10:00:00Z", slot["slotStart"])
	assert.Equal(t, "10:00", slot["time"])
	assert.Equal(t, float64(1), slot["remainingCapacity"])
	assert.Equal(t, false, slot["available"])

	assert.Equal(t, "2026-09-15", decoded.Date)
}
