package templates

import (
	"context"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/internal/integrations/catalogservice"
)

// TemplateRepository интерфейс репозитория шаблонов доступности
type TemplateRepository interface {
	Create(ctx context.Context, tmpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityTemplate, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.AvailabilityTemplate, error)
	Update(ctx context.Context, id int64, update domain.TemplateUpdate) error
	DeactivateActive(ctx context.Context, businessID int64, slotDurationMinutes int, exceptID int64) error
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*catalogservice.Business, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
