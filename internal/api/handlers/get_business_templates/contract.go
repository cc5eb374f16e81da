package get_business_templates

import (
	"context"

	"github.com/m04kA/SMC-ActivityService/internal/service/templates/models"
)

type TemplateService interface {
	ListByBusiness(ctx context.Context, businessID int64, userID int64) (*models.TemplateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
