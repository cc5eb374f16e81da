package create_template

import (
	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/internal/service/templates/models"
)

// Request модель HTTP запроса на создание шаблона доступности
type Request struct {
	Name                string                `json:"name"`
	Status              *string               `json:"status,omitempty"` // По умолчанию draft
	SlotDurationMinutes int                   `json:"slotDurationMinutes"`
	CapacityPerSlot     int                   `json:"capacityPerSlot"`
	WeeklySchedule      domain.WeeklySchedule `json:"weeklySchedule"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *Request) ToServiceRequest(userID, businessID int64) *models.CreateTemplateRequest {
	return &models.CreateTemplateRequest{
		UserID:              userID,
		BusinessID:          businessID,
		Name:                r.Name,
		Status:              r.Status,
		SlotDurationMinutes: r.SlotDurationMinutes,
		CapacityPerSlot:     r.CapacityPerSlot,
		WeeklySchedule:      r.WeeklySchedule,
	}
}
