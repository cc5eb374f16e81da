package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	createBooking "github.com/m04kA/SMC-ActivityService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ActivityService/pkg/types"
)

// Request модель HTTP запроса на создание бронирования
type Request struct {
	ActivityID        int64   `json:"activityId"`
	Date              string  `json:"date"`      // "2026-09-15"
	StartTime         string  `json:"startTime"` // "10:00"
	ParticipantsCount int     `json:"participantsCount"`
	PackageCode       *string `json:"packageCode,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель usecase
func (r *Request) ToUseCaseRequest(consumerID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}

	startTime := types.TimeString(r.StartTime)
	if err := startTime.Validate(); err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", r.StartTime, err)
	}

	return &createBooking.Request{
		ConsumerID:        consumerID,
		ActivityID:        r.ActivityID,
		Date:              date,
		StartTime:         startTime,
		ParticipantsCount: r.ParticipantsCount,
		PackageCode:       r.PackageCode,
		Notes:             r.Notes,
	}, nil
}

// Response модель HTTP ответа с созданным бронированием
type Response struct {
	ID                int64  `json:"id"`
	ActivityID        int64  `json:"activityId"`
	BusinessID        int64  `json:"businessId"`
	ConsumerID        int64  `json:"consumerId"`
	BookingDate       string `json:"bookingDate"`
	StartTime         string `json:"startTime"`
	DurationMinutes   int    `json:"durationMinutes"`
	ParticipantsCount int    `json:"participantsCount"`
	Status            string `json:"status"`

	Activity  domain.ActivitySnapshot  `json:"activity"`
	Business  domain.BusinessSnapshot  `json:"business"`
	Selection domain.SelectionSnapshot `json:"selection"`
	Price     domain.PriceSnapshot     `json:"price"`

	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *Response {
	return &Response{
		ID:                resp.ID,
		ActivityID:        resp.ActivityID,
		BusinessID:        resp.BusinessID,
		ConsumerID:        resp.ConsumerID,
		BookingDate:       resp.BookingDate.Format(domain.DateFormat),
		StartTime:         string(resp.StartTime),
		DurationMinutes:   resp.DurationMinutes,
		ParticipantsCount: resp.ParticipantsCount,
		Status:            resp.Status,
		Activity:          resp.ActivitySnapshot,
		Business:          resp.BusinessSnapshot,
		Selection:         resp.SelectionSnapshot,
		Price:             resp.PriceSnapshot,
		Notes:             resp.Notes,
		CreatedAt:         resp.CreatedAt,
		UpdatedAt:         resp.UpdatedAt,
	}
}
