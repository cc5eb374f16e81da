package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ActivityService/internal/api/handlers"
	"github.com/m04kA/SMC-ActivityService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ActivityService/internal/usecase/create_booking"
)

const (
	msgInvalidBody          = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgProfileIncomplete    = "профиль не заполнен: укажите имя, фамилию и телефон"
	msgActivityNotFound     = "активность не найдена"
	msgActivityNotPublished = "активность не опубликована"
	msgBusinessNotFound     = "бизнес не найден"
	msgTemplateNotFound     = "для активности не настроено расписание"
	msgTemplateMismatch     = "время не совпадает с сеткой слотов расписания"
	msgSlotInPast           = "слот уже начался или находится в прошлом"
	msgSlotFull             = "в слоте недостаточно мест"
	msgPackageNotFound      = "пакет не найден"
	msgInvalidPartySize     = "недопустимое количество участников для пакета"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем consumerID из контекста (через middleware Auth)
	consumerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var httpReq Request
	if err := handlers.DecodeJSON(r, &httpReq); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidBody)
		return
	}

	req, err := httpReq.ToUseCaseRequest(consumerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid request fields: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, err.Error())
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, err.Error())

		case errors.Is(err, createBooking.ErrProfileIncomplete):
			h.logger.Warn("POST /bookings - Profile incomplete: consumer_id=%d", consumerID)
			handlers.RespondForbiddenWithCode(w, handlers.CodeProfileIncomplete, msgProfileIncomplete)

		case errors.Is(err, createBooking.ErrActivityNotFound):
			h.logger.Warn("POST /bookings - Activity not found: activity_id=%d", req.ActivityID)
			handlers.RespondNotFound(w, handlers.CodeActivityNotFound, msgActivityNotFound)

		case errors.Is(err, createBooking.ErrActivityNotPublished):
			h.logger.Warn("POST /bookings - Activity not published: activity_id=%d", req.ActivityID)
			handlers.RespondConflict(w, handlers.CodeActivityNotPublished, msgActivityNotPublished)

		case errors.Is(err, createBooking.ErrBusinessNotFound):
			h.logger.Warn("POST /bookings - Business not found: activity_id=%d", req.ActivityID)
			handlers.RespondNotFound(w, handlers.CodeBusinessNotFound, msgBusinessNotFound)

		case errors.Is(err, createBooking.ErrPackageNotFound):
			h.logger.Warn("POST /bookings - Package not found: activity_id=%d", req.ActivityID)
			handlers.RespondNotFound(w, handlers.CodePackageNotFound, msgPackageNotFound)

		case errors.Is(err, createBooking.ErrInvalidPartySize):
			h.logger.Warn("POST /bookings - Invalid party size: participants=%d", req.ParticipantsCount)
			handlers.RespondBadRequest(w, handlers.CodeInvalidPartySize, msgInvalidPartySize)

		case errors.Is(err, createBooking.ErrTemplateNotFound):
			h.logger.Warn("POST /bookings - No active template: activity_id=%d", req.ActivityID)
			handlers.RespondNotFound(w, handlers.CodeTemplateNotFound, msgTemplateNotFound)

		case errors.Is(err, createBooking.ErrTemplateMismatch):
			h.logger.Warn("POST /bookings - Slot not on template grid: activity_id=%d, start_time=%s",
				req.ActivityID, req.StartTime)
			handlers.RespondConflict(w, handlers.CodeTemplateMismatch, msgTemplateMismatch)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in past: activity_id=%d, start_time=%s",
				req.ActivityID, req.StartTime)
			handlers.RespondConflict(w, handlers.CodeSlotInPast, msgSlotInPast)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: activity_id=%d, start_time=%s, participants=%d",
				req.ActivityID, req.StartTime, req.ParticipantsCount)
			handlers.RespondConflict(w, handlers.CodeSlotFull, msgSlotFull)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: consumer_id=%d, error=%v",
				consumerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, consumer_id=%d, activity_id=%d",
		resp.ID, consumerID, resp.ActivityID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
