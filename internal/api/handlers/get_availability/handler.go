package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ActivityService/internal/api/handlers"
	"github.com/m04kA/SMC-ActivityService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ActivityService/internal/usecase/get_availability"
)

const (
	msgInvalidActivityID    = "некорректный ID активности"
	msgInvalidDate          = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgInvalidPartySize     = "некорректное количество участников"
	msgActivityNotFound     = "активность не найдена"
	msgActivityNotPublished = "активность не опубликована"
	msgTemplateNotFound     = "для активности не настроено расписание"
)

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/activities/{activityId}/availability?date=YYYY-MM-DD&partySize=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	activityID, err := strconv.ParseInt(vars["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /activities/{id}/availability - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidActivityID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /activities/{id}/availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidDate)
		return
	}

	// partySize по умолчанию 1: запрос без параметра показывает
	// доступность для одного участника
	partySize := domain.DefaultPartySize
	if partySizeStr := r.URL.Query().Get("partySize"); partySizeStr != "" {
		partySize, err = strconv.Atoi(partySizeStr)
		if err != nil || partySize < 1 {
			h.logger.Warn("GET /activities/{id}/availability - Invalid party size %q", partySizeStr)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidPartySize)
			return
		}
	}

	resp, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		ActivityID: activityID,
		Date:       date,
		PartySize:  partySize,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /activities/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, err.Error())

		case errors.Is(err, getAvailability.ErrActivityNotFound):
			h.logger.Warn("GET /activities/{id}/availability - Activity not found: activity_id=%d", activityID)
			handlers.RespondNotFound(w, handlers.CodeActivityNotFound, msgActivityNotFound)

		case errors.Is(err, getAvailability.ErrActivityNotPublished):
			h.logger.Warn("GET /activities/{id}/availability - Activity not published: activity_id=%d", activityID)
			handlers.RespondConflict(w, handlers.CodeActivityNotPublished, msgActivityNotPublished)

		case errors.Is(err, getAvailability.ErrTemplateNotFound):
			h.logger.Warn("GET /activities/{id}/availability - No active template: activity_id=%d", activityID)
			handlers.RespondNotFound(w, handlers.CodeTemplateNotFound, msgTemplateNotFound)

		default:
			h.logger.Error("GET /activities/{id}/availability - Failed to resolve slots: activity_id=%d, error=%v",
				activityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /activities/{id}/availability - Slots resolved: activity_id=%d, date=%s, slots=%d",
		activityID, dateStr, len(resp.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
