package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetLedgerForSlotDate получает все неотменённые бронирования активности на дату
	GetLedgerForSlotDate(ctx context.Context, activityID int64, date time.Time) ([]*domain.Booking, error)
}

// TemplateRepository интерфейс репозитория шаблонов доступности
type TemplateRepository interface {
	// GetActiveTemplate получает активный шаблон бизнеса для длительности слота
	GetActiveTemplate(ctx context.Context, businessID int64, slotDurationMinutes int) (*domain.AvailabilityTemplate, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetActivity(ctx context.Context, activityID int64) (*catalogservice.Activity, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
