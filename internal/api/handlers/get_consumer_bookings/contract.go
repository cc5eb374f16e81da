package get_consumer_bookings

import (
	"context"

	"github.com/m04kA/SMC-ActivityService/internal/service/bookings/models"
)

type BookingService interface {
	GetConsumerBookings(ctx context.Context, req *models.GetConsumerBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
