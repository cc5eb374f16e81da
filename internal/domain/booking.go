package domain

import (
	"time"

	"github.com/m04kA/SMC-ActivityService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a consumer reservation of an activity slot
type Booking struct {
	ID                int64
	ActivityID        int64
	BusinessID        int64 // денормализовано для выборок по бизнесу
	ConsumerID        int64
	BookingDate       time.Time
	StartTime         types.TimeString
	DurationMinutes   int
	ParticipantsCount int
	Status            BookingStatus

	// Immutable copies captured at booking time; later edits to the
	// activity/business/package never touch them
	ActivitySnapshot  ActivitySnapshot
	BusinessSnapshot  BusinessSnapshot
	SelectionSnapshot SelectionSnapshot
	PriceSnapshot     PriceSnapshot

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still consumes slot capacity
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsCompleted returns true if the booking slot has elapsed
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// CountsTowardCapacity returns true if the booking participates in
// capacity aggregation (everything except cancelled)
func (b *Booking) CountsTowardCapacity() bool {
	for _, status := range CapacityConsumingStatuses {
		if b.Status == status {
			return true
		}
	}
	return false
}

// CanBeCancelled returns true if the booking is in a cancellable state
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusActive
}

// SlotStart returns the absolute start of the booked slot
func (b *Booking) SlotStart() time.Time {
	return b.StartTime.OnDate(b.BookingDate)
}

// SlotEnd returns the absolute end of the booked slot
func (b *Booking) SlotEnd() time.Time {
	return b.SlotStart().Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// BusinessBookingsFilter фильтр для получения бронирований бизнеса
type BusinessBookingsFilter struct {
	BusinessID      int64          // Обязательный параметр
	ActivityID      *int64         // Фильтр по активности (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
