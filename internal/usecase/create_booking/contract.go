package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ActivityService/internal/integrations/profileservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetLedgerForSlotDate получает все неотменённые бронирования активности на дату
	// Внутри транзакции блокирует строки (FOR UPDATE)
	GetLedgerForSlotDate(ctx context.Context, activityID int64, date time.Time) ([]*domain.Booking, error)
}

// TemplateRepository интерфейс репозитория шаблонов доступности
type TemplateRepository interface {
	GetActiveTemplate(ctx context.Context, businessID int64, slotDurationMinutes int) (*domain.AvailabilityTemplate, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetActivity(ctx context.Context, activityID int64) (*catalogservice.Activity, error)
	GetBusiness(ctx context.Context, businessID int64) (*catalogservice.Business, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetProfile(ctx context.Context, consumerID int64) (*profileservice.Profile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
