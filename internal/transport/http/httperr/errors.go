// httperr стандартизирует ответы об ошибках HTTP-слоя listings-сервиса.
// На вход он принимает ошибку сервисного слоя, а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Маппинг:
//   - service.ErrInvalidArgument -> 400/invalid_argument
//   - ErrUnauthenticated (транспортный) -> 401/unauthenticated
//   - service.ErrPermissionDenied -> 403/permission_denied
//   - service.ErrNotFound -> 404/not_found
//   - service.ErrConflict -> 409/conflict
//   - service.ErrIllegalTransition -> 412/failed_precondition
//   - прочее (включая service.ErrInternal) -> 500/internal
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skrmarket/listings-service/internal/service"
)

var (
	// ErrUnauthenticated — запрос без валидного токена на защищённом маршруте.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInternalServer — транспортная внутренняя ошибка (panic и т.п.).
	ErrInternalServer = errors.New("internal")
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и унифицированный
// ответ для фронта.
//
// err == nil — это программная ошибка вызова: возвращаем 500/internal,
// чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := base(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func base(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden, "permission_denied", "permission denied"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, "conflict", "conflict"
	case errors.Is(err, service.ErrIllegalTransition):
		return http.StatusPreconditionFailed, "failed_precondition", "failed precondition"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
