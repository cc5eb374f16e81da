package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/pkg/types"
)

// generateTimeSlots генерирует сетку слотов дня из окон недельного расписания.
// Слоты идут с фиксированным шагом slotDuration от открытия окна; слот,
// не помещающийся до закрытия окна целиком, не генерируется
func generateTimeSlots(windows []domain.TimeWindow, slotDuration int) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)

	for _, window := range windows {
		current := window.Open

		for {
			slotEnd, err := current.AddMinutes(slotDuration)
			if err != nil {
				return nil, err
			}
			if slotEnd.IsAfter(window.Close) {
				break
			}

			slots = append(slots, current)
			current = slotEnd
		}
	}

	return slots, nil
}

// aggregateBookedCapacity суммирует участников бронирований по времени начала слота
// Бронирования журнала уже отфильтрованы от отменённых
func aggregateBookedCapacity(bookings []*domain.Booking) map[types.TimeString]int {
	booked := make(map[types.TimeString]int, len(bookings))

	for _, booking := range bookings {
		if !booking.CountsTowardCapacity() {
			continue
		}
		booked[booking.StartTime] += booking.ParticipantsCount
	}

	return booked
}

// resolveSlots собирает итоговые слоты: сетка шаблона + занятость из журнала.
// Слот доступен, если остаток ёмкости вмещает partySize и слот ещё не начался
func resolveSlots(
	timeSlots []types.TimeString,
	date time.Time,
	slotDuration int,
	capacityPerSlot int,
	booked map[types.TimeString]int,
	partySize int,
	now time.Time,
) []domain.Slot {
	result := make([]domain.Slot, len(timeSlots))

	for i, startTime := range timeSlots {
		capacityBooked := booked[startTime]

		remaining := capacityPerSlot - capacityBooked
		if remaining < 0 {
			remaining = 0
		}

		// Прошедшим считается слот, начавшийся строго раньше now;
		// слот, начинающийся ровно в now, ещё доступен
		slotStart := startTime.OnDate(date)
		inPast := slotStart.Before(now)

		slot := domain.Slot{
			SlotStart:         slotStart,
			StartTime:         startTime,
			DurationMinutes:   slotDuration,
			CapacityTotal:     capacityPerSlot,
			CapacityBooked:    capacityBooked,
			RemainingCapacity: remaining,
		}
		slot.Available = !inPast && !slot.IsFull() && slot.RemainingCapacity >= partySize

		result[i] = slot
	}

	return result
}
