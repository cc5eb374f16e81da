package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ConsumerID         int64  `json:"consumerId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetConsumerBookingsRequest запрос на получение бронирований потребителя
type GetConsumerBookingsRequest struct {
	ConsumerID int64   `json:"consumerId"`
	Status     *string `json:"status,omitempty"`
}

// GetBusinessBookingsRequest запрос на получение бронирований бизнеса
type GetBusinessBookingsRequest struct {
	UserID          int64      `json:"userId"`
	BusinessID      int64      `json:"businessId"`
	ActivityID      *int64     `json:"activityId,omitempty"`      // Фильтр по активности (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBusinessBookingsRequest) ToDomainFilter() (domain.BusinessBookingsFilter, error) {
	filter := domain.BusinessBookingsFilter{
		BusinessID:      r.BusinessID,
		ActivityID:      r.ActivityID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                int64  `json:"id"`
	ActivityID        int64  `json:"activityId"`
	BusinessID        int64  `json:"businessId"`
	ConsumerID        int64  `json:"consumerId"`
	BookingDate       string `json:"bookingDate"` // "2026-09-15"
	StartTime         string `json:"startTime"`   // "10:00"
	SlotStart         string `json:"slotStart"`   // ISO 8601, дата + время
	DurationMinutes   int    `json:"durationMinutes"`
	ParticipantsCount int    `json:"participantsCount"`
	Status            string `json:"status"`

	// Снапшоты момента бронирования
	Activity  domain.ActivitySnapshot  `json:"activity"`
	Business  domain.BusinessSnapshot  `json:"business"`
	Selection domain.SelectionSnapshot `json:"selection"`
	Price     domain.PriceSnapshot     `json:"price"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ActivityID:         b.ActivityID,
		BusinessID:         b.BusinessID,
		ConsumerID:         b.ConsumerID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		SlotStart:          b.SlotStart().Format(time.RFC3339),
		DurationMinutes:    b.DurationMinutes,
		ParticipantsCount:  b.ParticipantsCount,
		Status:             string(b.Status),
		Activity:           b.ActivitySnapshot,
		Business:           b.BusinessSnapshot,
		Selection:          b.SelectionSnapshot,
		Price:              b.PriceSnapshot,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.ValidBookingStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
