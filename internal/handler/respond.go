package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/asset-tracking-api/internal/domain"
	"github.com/asset-tracking-api/internal/dto"
	"github.com/go-playground/validator/v10"
)

func respondJSON(logger *slog.Logger, w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func respondError(logger *slog.Logger, w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

// handleServiceError отображает бизнес-ошибки на HTTP-коды.
// Неизвестные ошибки логируются и возвращаются обобщённым 500,
// внутренние детали хранилища наружу не утекают
func handleServiceError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		respondError(logger, w, http.StatusBadRequest, "validation error", firstFieldError(validationErrs))
	case errors.Is(err, domain.ErrRequestNotFound):
		respondError(logger, w, http.StatusNotFound, "request not found", "")
	case errors.Is(err, domain.ErrAssetNotFound):
		respondError(logger, w, http.StatusNotFound, "asset not found", "")
	case errors.Is(err, domain.ErrUserNotFound):
		respondError(logger, w, http.StatusNotFound, "user not found", "")
	case errors.Is(err, domain.ErrDepartmentNotFound):
		respondError(logger, w, http.StatusNotFound, "department not found", "")
	case errors.Is(err, domain.ErrManagerNotFound):
		respondError(logger, w, http.StatusNotFound, "manager user not found", "")
	case errors.Is(err, domain.ErrRequestAlreadyResolved):
		respondError(logger, w, http.StatusConflict, "request is already accepted or rejected", "")
	case errors.Is(err, domain.ErrUnsupportedRequestType):
		respondError(logger, w, http.StatusUnprocessableEntity, "unsupported request type", "")
	case errors.Is(err, domain.ErrActorRequired):
		respondError(logger, w, http.StatusBadRequest, "acting user id is required", "")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		respondError(logger, w, http.StatusServiceUnavailable, "temporary failure, retry the request", "")
	default:
		logger.Error("internal error", slog.Any("error", err))
		respondError(logger, w, http.StatusInternalServerError, "internal server error", "")
	}
}

// firstFieldError возвращает сообщение о первом невалидном поле
func firstFieldError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return ""
	}
	e := errs[0]
	return fmt.Sprintf("field '%s' failed validation on '%s'", e.Field(), e.Tag())
}

// decodeStrict разбирает JSON-тело со строгим allow-list полей:
// неизвестные ключи отклоняются, чтобы клиент не подмешал статус
// или поля аудита
func decodeStrict(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// actorFromRequest извлекает уже аутентифицированного инициатора.
// Выпуск сессий - внешний компонент, движок доверяет заголовку
func actorFromRequest(r *http.Request) domain.Actor {
	return domain.Actor{
		UserID:    strings.TrimSpace(r.Header.Get("X-User-Id")),
		IPAddress: clientIP(r),
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
