package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/pkg/types"
)

func window(open, close string) domain.TimeWindow {
	return domain.TimeWindow{
		Open:  types.TimeString(open),
		Close: types.TimeString(close),
	}
}

func TestGenerateTimeSlots(t *testing.T) {
	testCases := []struct {
		name         string
		windows      []domain.TimeWindow
		slotDuration int
		expected     []types.TimeString
	}{
		{
			name:         "three hour window with hour slots",
			windows:      []domain.TimeWindow{window("09:00", "12:00")},
			slotDuration: 60,
			expected:     []types.TimeString{"09:00", "10:00", "11:00"},
		},
		{
			name:         "partial slot at window end is dropped",
			windows:      []domain.TimeWindow{window("09:00", "10:30")},
			slotDuration: 60,
			expected:     []types.TimeString{"09:00"},
		},
		{
			name:         "window holds exactly one slot",
			windows:      []domain.TimeWindow{window("09:00", "10:00")},
			slotDuration: 60,
			expected:     []types.TimeString{"09:00"},
		},
		{
			name: "two windows with a gap",
			windows: []domain.TimeWindow{
				window("09:00", "11:00"),
				window("14:00", "16:00"),
			},
			slotDuration: 60,
			expected:     []types.TimeString{"09:00", "10:00", "14:00", "15:00"},
		},
		{
			name:         "thirty minute slots",
			windows:      []domain.TimeWindow{window("10:00", "11:30")},
			slotDuration: 30,
			expected:     []types.TimeString{"10:00", "10:30", "11:00"},
		},
		{
			name:         "closed day has no windows",
			windows:      []domain.TimeWindow{},
			slotDuration: 60,
			expected:     []types.TimeString{},
		},
		{
			name:         "window up to midnight",
			windows:      []domain.TimeWindow{window("22:00", "24:00")},
			slotDuration: 60,
			expected:     []types.TimeString{"22:00", "23:00"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slots, err := generateTimeSlots(tc.windows, tc.slotDuration)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, slots)
		})
	}
}

func TestGenerateTimeSlots_StrictlyIncreasing(t *testing.T) {
	windows := []domain.TimeWindow{
		window("08:00", "13:00"),
		window("14:00", "20:00"),
	}

	slots, err := generateTimeSlots(windows, 45)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]),
			"slot %s must be before %s", slots[i-1], slots[i])
	}
}

func TestAggregateBookedCapacity(t *testing.T) {
	bookings := []*domain.Booking{
		{StartTime: "10:00", ParticipantsCount: 2, Status: domain.StatusActive},
		{StartTime: "10:00", ParticipantsCount: 1, Status: domain.StatusActive},
		{StartTime: "11:00", ParticipantsCount: 3, Status: domain.StatusCompleted},
		{StartTime: "12:00", ParticipantsCount: 4, Status: domain.StatusCancelled},
	}

	booked := aggregateBookedCapacity(bookings)

	assert.Equal(t, 3, booked["10:00"])
	assert.Equal(t, 3, booked["11:00"], "completed bookings still consume capacity")
	assert.Equal(t, 0, booked["12:00"], "cancelled bookings never consume capacity")
}

func TestResolveSlots(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	timeSlots := []types.TimeString{"09:00", "10:00", "11:00"}
	booked := map[types.TimeString]int{
		"10:00": 3,
		"11:00": 4,
	}

	slots := resolveSlots(timeSlots, date, 60, 4, booked, 2, now)
	require.Len(t, slots, 3)

	assert.True(t, slots[0].Available)
	assert.Equal(t, 4, slots[0].RemainingCapacity)

	// Ёмкость 4, занято 3, запрошено 2 места - слот недоступен, остаток 1
	assert.False(t, slots[1].Available)
	assert.Equal(t, 1, slots[1].RemainingCapacity)
	assert.Equal(t, 3, slots[1].CapacityBooked)

	assert.False(t, slots[2].Available)
	assert.Equal(t, 0, slots[2].RemainingCapacity)
	assert.True(t, slots[2].IsFull())
}

func TestResolveSlots_PastSlotsUnavailable(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	// Сейчас 10:00 того же дня: 09:00 уже начался, 10:00 начинается
	// ровно сейчас и ещё доступен
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	timeSlots := []types.TimeString{"09:00", "10:00", "11:00"}
	slots := resolveSlots(timeSlots, date, 60, 4, nil, 1, now)
	require.Len(t, slots, 3)

	assert.False(t, slots[0].Available)
	assert.True(t, slots[1].Available)
	assert.True(t, slots[2].Available)

	// Остаток ёмкости при этом считается как обычно
	assert.Equal(t, 4, slots[0].RemainingCapacity)
}

func TestResolveSlots_OverbookedClampedToZero(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	booked := map[types.TimeString]int{"09:00": 7}
	slots := resolveSlots([]types.TimeString{"09:00"}, date, 60, 4, booked, 1, now)

	require.Len(t, slots, 1)
	assert.Equal(t, 0, slots[0].RemainingCapacity)
	assert.False(t, slots[0].Available)
}
