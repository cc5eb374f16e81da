package cancel_booking

import (
	"github.com/m04kA/SMC-ActivityService/internal/service/bookings/models"
)

// Request модель HTTP запроса на отмену бронирования
type Request struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *Request) ToServiceRequest(consumerID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		ConsumerID:         consumerID,
		CancellationReason: r.CancellationReason,
	}
}
