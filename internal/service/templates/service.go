package templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	templateRepo "github.com/m04kA/SMC-ActivityService/internal/infra/storage/template"
	catalogClient "github.com/m04kA/SMC-ActivityService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ActivityService/internal/service/templates/models"
)

// Service сервис для работы с шаблонами доступности
type Service struct {
	templateRepo  TemplateRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(
	templateRepo TemplateRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		templateRepo:  templateRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// Create создает новый шаблон доступности
// Доступно только менеджерам бизнеса. Шаблон создается в статусе draft,
// если явно не запрошен active; активация деактивирует предыдущий активный
// шаблон с той же длительностью слота
func (s *Service) Create(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Create: creating template for business=%d by user=%d", req.BusinessID, req.UserID)

	// 1. Конвертируем и валидируем входные данные
	tmpl, err := req.ToDomainTemplate()
	if err != nil {
		s.logger.Warn("Create: invalid status for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.validateTemplateData(tmpl); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа (только менеджер бизнеса)
	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Создаем шаблон; активация - в транзакции с деактивацией предыдущего
	var created *domain.AvailabilityTemplate
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err = s.templateRepo.Create(txCtx, tmpl)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		if created.IsActive() {
			if err := s.templateRepo.DeactivateActive(txCtx, created.BusinessID, created.SlotDurationMinutes, created.ID); err != nil {
				return fmt.Errorf("%w: Create - failed to deactivate previous template: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Create: %v", err)
		return nil, err
	}

	s.logger.Info("Create: successfully created template id=%d", created.ID)
	return models.FromDomainTemplate(created), nil
}

// GetByID получает шаблон по ID
// Доступно только менеджерам бизнеса-владельца
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.TemplateResponse, error) {
	s.logger.Info("GetByID: fetching template id=%d for user=%d", id, userID)

	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("GetByID: template id=%d not found", id)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("GetByID: repository error for template id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkManagerAccess(ctx, tmpl.BusinessID, userID); err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched template id=%d", id)
	return models.FromDomainTemplate(tmpl), nil
}

// ListByBusiness получает все шаблоны бизнеса
// Доступно только менеджерам бизнеса
func (s *Service) ListByBusiness(ctx context.Context, businessID int64, userID int64) (*models.TemplateListResponse, error) {
	s.logger.Info("ListByBusiness: fetching templates for business=%d by user=%d", businessID, userID)

	if err := s.checkManagerAccess(ctx, businessID, userID); err != nil {
		return nil, err
	}

	templates, err := s.templateRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("ListByBusiness: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListByBusiness - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByBusiness: successfully fetched %d templates for business=%d", len(templates), businessID)
	return models.FromDomainTemplateList(templates), nil
}

// Update частично обновляет шаблон
// Доступно только менеджерам бизнеса. Активация шаблона выполняется в
// транзакции: предыдущий активный шаблон с той же длительностью слота
// переводится в inactive, активный шаблон на пару (бизнес, длительность)
// всегда не более одного
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Update: updating template id=%d by user=%d", id, req.UserID)

	// 1. Получаем существующий шаблон
	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("Update: template id=%d not found", id)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("Update: repository error for template id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа
	if err := s.checkManagerAccess(ctx, tmpl.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Конвертируем и применяем обновления к копии для валидации
	update, err := req.ToDomainUpdate()
	if err != nil {
		s.logger.Warn("Update: invalid status for template id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	updated := *tmpl
	applyUpdate(&updated, update)

	if err := s.validateTemplateData(&updated); err != nil {
		s.logger.Warn("Update: validation failed for template id=%d: %v", id, err)
		return nil, err
	}

	// 4. Обновляем; активация деактивирует предыдущий активный шаблон.
	// Смена длительности слота у активного шаблона тоже деактивирует
	// конкурента: пара (бизнес, длительность) держит не более одного
	// активного шаблона
	activating := updated.IsActive() &&
		(!tmpl.IsActive() || updated.SlotDurationMinutes != tmpl.SlotDurationMinutes)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.templateRepo.Update(txCtx, id, update); err != nil {
			if errors.Is(err, templateRepo.ErrTemplateNotFound) {
				return ErrTemplateNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if activating {
			if err := s.templateRepo.DeactivateActive(txCtx, updated.BusinessID, updated.SlotDurationMinutes, id); err != nil {
				return fmt.Errorf("%w: Update - failed to deactivate previous template: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Update: %v", err)
		return nil, err
	}

	// 5. Перечитываем шаблон, чтобы вернуть актуальное состояние
	reloaded, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload template id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated template id=%d", id)
	return models.FromDomainTemplate(reloaded), nil
}

// Вспомогательные методы

// applyUpdate применяет частичное обновление к шаблону
func applyUpdate(tmpl *domain.AvailabilityTemplate, update domain.TemplateUpdate) {
	if update.Name != nil {
		tmpl.Name = *update.Name
	}
	if update.Status != nil {
		tmpl.Status = *update.Status
	}
	if update.SlotDurationMinutes != nil {
		tmpl.SlotDurationMinutes = *update.SlotDurationMinutes
	}
	if update.CapacityPerSlot != nil {
		tmpl.CapacityPerSlot = *update.CapacityPerSlot
	}
	if update.WeeklySchedule != nil {
		tmpl.WeeklySchedule = *update.WeeklySchedule
	}
}

// validateTemplateData валидирует параметры шаблона
func (s *Service) validateTemplateData(tmpl *domain.AvailabilityTemplate) error {
	if tmpl.Name == "" || len(tmpl.Name) > domain.MaxTemplateNameLength {
		return fmt.Errorf("%w: name must be between 1 and %d characters",
			ErrInvalidInput, domain.MaxTemplateNameLength)
	}

	if tmpl.SlotDurationMinutes < domain.MinSlotDurationMinutes || tmpl.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if tmpl.CapacityPerSlot < domain.MinCapacityPerSlot || tmpl.CapacityPerSlot > domain.MaxCapacityPerSlot {
		return fmt.Errorf("%w: capacityPerSlot must be between %d and %d",
			ErrInvalidInput, domain.MinCapacityPerSlot, domain.MaxCapacityPerSlot)
	}

	if err := tmpl.ValidateSchedule(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь управляет бизнесом
func (s *Service) checkManagerAccess(ctx context.Context, businessID int64, userID int64) error {
	business, err := s.catalogClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			s.logger.Warn("checkManagerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get business: %v", ErrInternal, err)
	}

	if !business.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of business=%d", userID, businessID)
		return ErrAccessDenied
	}

	return nil
}
