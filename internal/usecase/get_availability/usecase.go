package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	templateRepo "github.com/m04kA/SMC-ActivityService/internal/infra/storage/template"
	catalogClient "github.com/m04kA/SMC-ActivityService/internal/integrations/catalogservice"
)

// UseCase use case для резолва доступности слотов активности на дату
type UseCase struct {
	bookingRepo   BookingRepository
	templateRepo  TemplateRepository
	catalogClient CatalogServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	templateRepo TemplateRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		templateRepo:  templateRepo,
		catalogClient: catalogClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступности
// Доступность всегда вычисляется заново из шаблона и журнала бронирований,
// промежуточных счётчиков занятости нет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: activity=%d, date=%s, partySize=%d",
		req.ActivityID, req.Date.Format(domain.DateFormat), req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем активность из каталога
	activity, err := uc.catalogClient.GetActivity(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrActivityNotFound) {
			uc.logger.Warn("GetAvailability: activity id=%d not found", req.ActivityID)
			return nil, ErrActivityNotFound
		}
		uc.logger.Error("GetAvailability: failed to get activity id=%d: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: failed to get activity: %v", ErrInternal, err)
	}

	if !activity.IsPublished() {
		uc.logger.Warn("GetAvailability: activity id=%d is not published", req.ActivityID)
		return nil, ErrActivityNotPublished
	}

	// 4. Получаем активный шаблон бизнеса для длительности активности
	tmpl, err := uc.templateRepo.GetActiveTemplate(ctx, activity.BusinessID, activity.DurationMinutes)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			uc.logger.Warn("GetAvailability: no active template for business=%d, duration=%d",
				activity.BusinessID, activity.DurationMinutes)
			return nil, ErrTemplateNotFound
		}
		uc.logger.Error("GetAvailability: failed to get template: %v", err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}

	// 5. Генерируем сетку слотов на день недели запрошенной даты
	// Закрытый день - это пустой список слотов, а не ошибка
	windows := tmpl.WeeklySchedule.WindowsFor(req.Date.Weekday())
	timeSlots, err := generateTimeSlots(windows, tmpl.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	if len(timeSlots) == 0 {
		uc.logger.Info("GetAvailability: business=%d is closed on %s",
			activity.BusinessID, req.Date.Format(domain.DateFormat))
		return &Response{
			ActivityID: req.ActivityID,
			Date:       req.Date,
			PartySize:  req.PartySize,
			Slots:      []domain.Slot{},
		}, nil
	}

	// 6. Получаем журнал бронирований активности на дату одним запросом
	bookings, err := uc.bookingRepo.GetLedgerForSlotDate(ctx, req.ActivityID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Агрегируем занятость и собираем итоговые слоты
	capacityTotal := tmpl.CapacityPerSlot
	if activity.CapacityOverride != nil {
		capacityTotal = *activity.CapacityOverride
	}

	booked := aggregateBookedCapacity(bookings)
	slots := resolveSlots(timeSlots, req.Date, tmpl.SlotDurationMinutes, capacityTotal, booked, req.PartySize, now)

	uc.logger.Info("GetAvailability: resolved %d slots for activity=%d, date=%s",
		len(slots), req.ActivityID, req.Date.Format(domain.DateFormat))

	return &Response{
		ActivityID: req.ActivityID,
		Date:       req.Date,
		PartySize:  req.PartySize,
		Slots:      slots,
	}, nil
}
