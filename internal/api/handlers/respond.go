package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Машиночитаемые коды ошибок API
// Возвращаются в поле code каждого ответа с ошибкой
const (
	CodeTemplateNotFound     = "TEMPLATE_NOT_FOUND"
	CodeTemplateMismatch     = "TEMPLATE_MISMATCH"
	CodeSlotFull             = "SLOT_FULL"
	CodeSlotInPast           = "SLOT_IN_PAST"
	CodeProfileIncomplete    = "PROFILE_INCOMPLETE"
	CodeActivityNotPublished = "ACTIVITY_NOT_PUBLISHED"
	CodeActivityNotFound     = "ACTIVITY_NOT_FOUND"
	CodeBusinessNotFound     = "BUSINESS_NOT_FOUND"
	CodePackageNotFound      = "PACKAGE_NOT_FOUND"
	CodeInvalidPartySize     = "INVALID_PARTY_SIZE"
	CodeAccessDenied         = "ACCESS_DENIED"
	CodeBookingNotFound      = "BOOKING_NOT_FOUND"
	CodeCannotCancel         = "CANNOT_CANCEL"
	CodeTooLateToCancel      = "TOO_LATE_TO_CANCEL"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInternal             = "INTERNAL"
)

// ErrorResponse модель ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса в структуру
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// RespondJSON отправляет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Ошибку кодирования здесь уже не вернуть - статус отправлен
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError отправляет ответ с ошибкой: машиночитаемый код + сообщение
func RespondError(w http.ResponseWriter, status int, code string, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// RespondBadRequest отправляет 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, code string, message string) {
	RespondError(w, http.StatusBadRequest, code, message)
}

// RespondUnauthorized отправляет 401 Unauthorized
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// RespondForbidden отправляет 403 Forbidden
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeAccessDenied, message)
}

// RespondForbiddenWithCode отправляет 403 Forbidden с нестандартным кодом
func RespondForbiddenWithCode(w http.ResponseWriter, code string, message string) {
	RespondError(w, http.StatusForbidden, code, message)
}

// RespondNotFound отправляет 404 Not Found
func RespondNotFound(w http.ResponseWriter, code string, message string) {
	RespondError(w, http.StatusNotFound, code, message)
}

// RespondConflict отправляет 409 Conflict
func RespondConflict(w http.ResponseWriter, code string, message string) {
	RespondError(w, http.StatusConflict, code, message)
}

// RespondInternalError отправляет 500 Internal Server Error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, "внутренняя ошибка сервера")
}
