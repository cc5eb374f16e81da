package update_template

import (
	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/internal/service/templates/models"
)

// Request модель HTTP запроса на частичное обновление шаблона
// Указанные поля заменяют текущие значения, остальные не меняются
type Request struct {
	Name                *string                `json:"name,omitempty"`
	Status              *string                `json:"status,omitempty"`
	SlotDurationMinutes *int                   `json:"slotDurationMinutes,omitempty"`
	CapacityPerSlot     *int                   `json:"capacityPerSlot,omitempty"`
	WeeklySchedule      *domain.WeeklySchedule `json:"weeklySchedule,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *Request) ToServiceRequest(userID int64) *models.UpdateTemplateRequest {
	return &models.UpdateTemplateRequest{
		UserID:              userID,
		Name:                r.Name,
		Status:              r.Status,
		SlotDurationMinutes: r.SlotDurationMinutes,
		CapacityPerSlot:     r.CapacityPerSlot,
		WeeklySchedule:      r.WeeklySchedule,
	}
}
