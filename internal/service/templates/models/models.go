package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе шаблона
	ErrInvalidStatus = errors.New("invalid template status")
)

// Request модели

// CreateTemplateRequest запрос на создание шаблона доступности
type CreateTemplateRequest struct {
	UserID              int64                 `json:"userId"`
	BusinessID          int64                 `json:"businessId"`
	Name                string                `json:"name"`
	Status              *string               `json:"status,omitempty"` // По умолчанию draft
	SlotDurationMinutes int                   `json:"slotDurationMinutes"`
	CapacityPerSlot     int                   `json:"capacityPerSlot"`
	WeeklySchedule      domain.WeeklySchedule `json:"weeklySchedule"`
}

// ToDomainTemplate конвертирует CreateTemplateRequest в domain модель
func (r *CreateTemplateRequest) ToDomainTemplate() (*domain.AvailabilityTemplate, error) {
	status := domain.TemplateStatusDraft
	if r.Status != nil {
		converted, err := ToDomainTemplateStatus(*r.Status)
		if err != nil {
			return nil, err
		}
		status = converted
	}

	return &domain.AvailabilityTemplate{
		BusinessID:          r.BusinessID,
		Name:                r.Name,
		Status:              status,
		SlotDurationMinutes: r.SlotDurationMinutes,
		CapacityPerSlot:     r.CapacityPerSlot,
		WeeklySchedule:      r.WeeklySchedule,
	}, nil
}

// UpdateTemplateRequest запрос на обновление шаблона
// Все поля опциональны - обновляются только переданные значения
type UpdateTemplateRequest struct {
	UserID              int64                  `json:"userId"`
	Name                *string                `json:"name,omitempty"`
	Status              *string                `json:"status,omitempty"`
	SlotDurationMinutes *int                   `json:"slotDurationMinutes,omitempty"`
	CapacityPerSlot     *int                   `json:"capacityPerSlot,omitempty"`
	WeeklySchedule      *domain.WeeklySchedule `json:"weeklySchedule,omitempty"`
}

// ToDomainUpdate конвертирует request в domain частичное обновление
func (r *UpdateTemplateRequest) ToDomainUpdate() (domain.TemplateUpdate, error) {
	update := domain.TemplateUpdate{
		Name:                r.Name,
		SlotDurationMinutes: r.SlotDurationMinutes,
		CapacityPerSlot:     r.CapacityPerSlot,
		WeeklySchedule:      r.WeeklySchedule,
	}

	if r.Status != nil {
		status, err := ToDomainTemplateStatus(*r.Status)
		if err != nil {
			return update, err
		}
		update.Status = &status
	}

	return update, nil
}

// Response модели

// TemplateResponse ответ с данными шаблона доступности
type TemplateResponse struct {
	ID                  int64                 `json:"id"`
	BusinessID          int64                 `json:"businessId"`
	Name                string                `json:"name"`
	Status              string                `json:"status"`
	SlotDurationMinutes int                   `json:"slotDurationMinutes"`
	CapacityPerSlot     int                   `json:"capacityPerSlot"`
	WeeklySchedule      domain.WeeklySchedule `json:"weeklySchedule"`
	CreatedAt           time.Time             `json:"createdAt"`
	UpdatedAt           time.Time             `json:"updatedAt"`
}

// TemplateListResponse ответ со списком шаблонов
type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

// Методы конвертации

// FromDomainTemplate конвертирует domain модель в DTO
func FromDomainTemplate(t *domain.AvailabilityTemplate) *TemplateResponse {
	if t == nil {
		return nil
	}

	return &TemplateResponse{
		ID:                  t.ID,
		BusinessID:          t.BusinessID,
		Name:                t.Name,
		Status:              string(t.Status),
		SlotDurationMinutes: t.SlotDurationMinutes,
		CapacityPerSlot:     t.CapacityPerSlot,
		WeeklySchedule:      t.WeeklySchedule,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

// FromDomainTemplateList конвертирует список domain моделей в DTO
func FromDomainTemplateList(templates []*domain.AvailabilityTemplate) *TemplateListResponse {
	if templates == nil {
		return &TemplateListResponse{
			Templates: []TemplateResponse{},
		}
	}

	resp := &TemplateListResponse{
		Templates: make([]TemplateResponse, len(templates)),
	}

	for i, tmpl := range templates {
		if tmplResp := FromDomainTemplate(tmpl); tmplResp != nil {
			resp.Templates[i] = *tmplResp
		}
	}

	return resp
}

// ToDomainTemplateStatus конвертирует строку в domain.TemplateStatus с валидацией
func ToDomainTemplateStatus(status string) (domain.TemplateStatus, error) {
	s := domain.TemplateStatus(status)

	for _, valid := range domain.ValidTemplateStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
