package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	templateRepo "github.com/m04kA/SMC-ActivityService/internal/infra/storage/template"
	catalogClient "github.com/m04kA/SMC-ActivityService/internal/integrations/catalogservice"
	profileClient "github.com/m04kA/SMC-ActivityService/internal/integrations/profileservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	templateRepo  TemplateRepository
	catalogClient CatalogServiceClient
	profileClient ProfileServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	templateRepo TemplateRepository,
	catalogClient CatalogServiceClient,
	profileClient ProfileServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		templateRepo:  templateRepo,
		catalogClient: catalogClient,
		profileClient: profileClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка ёмкости и запись выполняются в одной сериализуемой транзакции:
// сумма участников неотменённых бронирований слота никогда не превышает
// ёмкость при любом параллелизме
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: consumer=%d, activity=%d, date=%s, time=%s, participants=%d",
		req.ConsumerID, req.ActivityID, req.Date.Format(domain.DateFormat), req.StartTime, req.ParticipantsCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем заполненность профиля потребителя - раньше всех остальных
	// проверок, чтобы фронт мог сразу отправить на заполнение профиля
	profile, err := uc.profileClient.GetProfile(ctx, req.ConsumerID)
	if err != nil {
		if errors.Is(err, profileClient.ErrProfileNotFound) {
			uc.logger.Warn("CreateBooking: consumer id=%d has no profile", req.ConsumerID)
			return nil, ErrProfileIncomplete
		}
		uc.logger.Error("CreateBooking: failed to get profile id=%d: %v", req.ConsumerID, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}

	if !profile.IsComplete() {
		uc.logger.Warn("CreateBooking: consumer id=%d profile is incomplete", req.ConsumerID)
		return nil, ErrProfileIncomplete
	}

	// 4. Получаем активность из каталога
	activity, err := uc.catalogClient.GetActivity(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrActivityNotFound) {
			uc.logger.Warn("CreateBooking: activity id=%d not found", req.ActivityID)
			return nil, ErrActivityNotFound
		}
		uc.logger.Error("CreateBooking: failed to get activity id=%d: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: failed to get activity: %v", ErrInternal, err)
	}

	if !activity.IsPublished() {
		uc.logger.Warn("CreateBooking: activity id=%d is not published", req.ActivityID)
		return nil, ErrActivityNotPublished
	}

	// 5. Получаем бизнес для снапшота
	business, err := uc.catalogClient.GetBusiness(ctx, activity.BusinessID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", activity.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", activity.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 6. Выбираем пакет и проверяем ограничения на участников
	pkg, err := selectPackage(activity, req.PackageCode, req.ParticipantsCount)
	if err != nil {
		uc.logger.Warn("CreateBooking: package selection failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 7. Проверка ёмкости и запись в одной сериализуемой транзакции
	// Бизнес-ошибки (SLOT_FULL и т.п.) транзакцией не ретраятся - ретраи
	// только на конфликтах сериализации
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Перечитываем активный шаблон уже внутри транзакции
		tmpl, err := uc.templateRepo.GetActiveTemplate(txCtx, activity.BusinessID, activity.DurationMinutes)
		if err != nil {
			if errors.Is(err, templateRepo.ErrTemplateNotFound) {
				uc.logger.Warn("CreateBooking: no active template for business=%d, duration=%d",
					activity.BusinessID, activity.DurationMinutes)
				return ErrTemplateNotFound
			}
			uc.logger.Error("CreateBooking: failed to get template: %v", err)
			return fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
		}

		// 7.2. Время начала должно лежать ровно на сетке слотов шаблона
		if err := validateStartTimeOnGrid(tmpl, req.Date, req.StartTime); err != nil {
			uc.logger.Warn("CreateBooking: start time validation failed: %v", err)
			return err
		}

		// 7.3. Слот не должен быть в прошлом
		if err := validateSlotNotInPast(req.Date, req.StartTime, now); err != nil {
			uc.logger.Warn("CreateBooking: slot time validation failed: %v", err)
			return err
		}

		// 7.4. Читаем журнал бронирований на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetLedgerForSlotDate(txCtx, req.ActivityID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 7.5. Проверяем остаток ёмкости слота
		capacityTotal := tmpl.CapacityPerSlot
		if activity.CapacityOverride != nil {
			capacityTotal = *activity.CapacityOverride
		}

		bookedSum := 0
		for _, b := range bookings {
			if b.CountsTowardCapacity() && b.StartTime.Equal(req.StartTime) {
				bookedSum += b.ParticipantsCount
			}
		}

		if bookedSum+req.ParticipantsCount > capacityTotal {
			uc.logger.Warn("CreateBooking: slot %s full, %d/%d taken, requested %d",
				req.StartTime, bookedSum, capacityTotal, req.ParticipantsCount)
			return ErrSlotFull
		}

		uc.logger.Info("CreateBooking: slot %s available, %d/%d taken",
			req.StartTime, bookedSum, capacityTotal)

		// 7.6. Создаем бронирование со снапшотами текущего состояния каталога
		// Снапшоты и строка журнала коммитятся вместе или не коммитятся вовсе
		booking := &domain.Booking{
			ActivityID:        req.ActivityID,
			BusinessID:        activity.BusinessID,
			ConsumerID:        req.ConsumerID,
			BookingDate:       req.Date,
			StartTime:         req.StartTime,
			DurationMinutes:   tmpl.SlotDurationMinutes,
			ParticipantsCount: req.ParticipantsCount,
			Status:            domain.StatusActive,
			ActivitySnapshot: domain.ActivitySnapshot{
				ActivityID: activity.ID,
				BusinessID: activity.BusinessID,
				TypeID:     activity.TypeID,
				Title:      activity.Title,
			},
			BusinessSnapshot: domain.BusinessSnapshot{
				BusinessID: business.ID,
				Name:       business.Name,
				City:       business.City,
			},
			SelectionSnapshot: domain.SelectionSnapshot{
				PackageCode:       pkg.Code,
				PackageTitle:      pkg.Title,
				PricingType:       string(pkg.PricingType),
				ParticipantsCount: req.ParticipantsCount,
			},
			PriceSnapshot: domain.PriceSnapshot{
				Currency:    pkg.Currency,
				BasePrice:   pkg.BasePrice,
				TotalPrice:  pkg.PriceFor(req.ParticipantsCount),
				PricingType: string(pkg.PricingType),
			},
			Notes: req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:                result.ID,
		ActivityID:        result.ActivityID,
		BusinessID:        result.BusinessID,
		ConsumerID:        result.ConsumerID,
		BookingDate:       result.BookingDate,
		StartTime:         result.StartTime,
		DurationMinutes:   result.DurationMinutes,
		ParticipantsCount: result.ParticipantsCount,
		Status:            string(result.Status),
		ActivitySnapshot:  result.ActivitySnapshot,
		BusinessSnapshot:  result.BusinessSnapshot,
		SelectionSnapshot: result.SelectionSnapshot,
		PriceSnapshot:     result.PriceSnapshot,
		Notes:             result.Notes,
		CreatedAt:         result.CreatedAt,
		UpdatedAt:         result.UpdatedAt,
	}, nil
}
