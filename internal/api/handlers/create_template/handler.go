package create_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ActivityService/internal/api/handlers"
	"github.com/m04kA/SMC-ActivityService/internal/api/middleware"
	"github.com/m04kA/SMC-ActivityService/internal/service/templates"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidBody       = "некорректное тело запроса"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgBusinessNotFound  = "бизнес не найден"
	msgForbidden         = "управление шаблонами доступно только менеджерам бизнеса"
)

type Handler struct {
	service TemplateService
	logger  Logger
}

func NewHandler(service TemplateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/templates - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /businesses/{id}/templates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var httpReq Request
	if err := handlers.DecodeJSON(r, &httpReq); err != nil {
		h.logger.Warn("POST /businesses/{id}/templates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidBody)
		return
	}

	template, err := h.service.Create(r.Context(), httpReq.ToServiceRequest(userID, businessID))
	if err != nil {
		switch {
		case errors.Is(err, templates.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/templates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, err.Error())

		case errors.Is(err, templates.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/templates - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, handlers.CodeBusinessNotFound, msgBusinessNotFound)

		case errors.Is(err, templates.ErrAccessDenied):
			h.logger.Warn("POST /businesses/{id}/templates - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /businesses/{id}/templates - Failed to create template: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/templates - Template created: template_id=%d, business_id=%d, status=%s",
		template.ID, businessID, template.Status)
	handlers.RespondJSON(w, http.StatusCreated, template)
}
