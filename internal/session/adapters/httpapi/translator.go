package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"shopauth/internal/session/observability"
	"shopauth/pkg/logger"
)

// Константы для логирования.
const (
	LogBackendRejected    = "backend rejected request"
	LogSessionInvalidated = "session invalidated after backend 401"
)

// Сообщения для пользователя по статусам ответа.
const (
	msgNoConnection  = "No internet connection"
	msgBadRequest    = "Invalid data, check the information"
	msgUnauthorized  = "Session expired. Please sign in again"
	msgForbidden     = "You do not have permission to perform this action"
	msgNotFound      = "Resource not found"
	msgConflict      = "The resource already exists or there is a conflict"
	msgUnprocessable = "Validation error"
	msgServerError   = "Server error"
	msgUnavailable   = "Server unavailable. Try again later"
)

const maxErrorBodySize = 64 << 10

// MessageFor возвращает сообщение для пользователя по статусу ответа.
// Сообщение, присланное сервером, имеет приоритет над таблицей; статус 0
// означает транспортную ошибку без ответа.
func MessageFor(status int, serverMessage string) string {
	if status == 0 {
		return msgNoConnection
	}
	if serverMessage != "" {
		return serverMessage
	}
	switch status {
	case http.StatusBadRequest:
		return msgBadRequest
	case http.StatusUnauthorized:
		return msgUnauthorized
	case http.StatusForbidden:
		return msgForbidden
	case http.StatusNotFound:
		return msgNotFound
	case http.StatusConflict:
		return msgConflict
	case http.StatusUnprocessableEntity:
		return msgUnprocessable
	case http.StatusInternalServerError:
		return msgServerError
	case http.StatusServiceUnavailable:
		return msgUnavailable
	default:
		return fmt.Sprintf("Unexpected error (%d). Try again", status)
	}
}

// backendError связывает ошибку доменной таксономии с сообщением для
// пользователя, извлеченным из отказа бэкенда. Сообщение показывается
// один раз по итогу операции, а не на каждую повторную попытку.
type backendError struct {
	err     error
	message string
}

func (e *backendError) Error() string { return e.err.Error() }

func (e *backendError) Unwrap() error { return e.err }

// translator - http.RoundTripper, перехватывающий каждый ответ API. На
// не-2xx логирует отказ, а на 401 дополнительно инвалидирует сессию,
// чтобы устаревший UI не считал пользователя аутентифицированным после
// отказа бэкенда. Ответ всегда возвращается вызывающему нетронутым;
// уведомления пользователю транслятор не показывает - это делает шлюз
// по итогу операции, когда повторные попытки исчерпаны.
type translator struct {
	base       http.RoundTripper
	invalidate func(ctx context.Context)
	metrics    *observability.Metrics
}

func newTranslator(base http.RoundTripper, invalidate func(ctx context.Context), m *observability.Metrics) *translator {
	return &translator{base: base, invalidate: invalidate, metrics: m}
}

// RoundTrip реализует http.RoundTripper.
func (t *translator) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	logger.Log(ctx).Warn(ctx, LogBackendRejected,
		zap.Int("status", resp.StatusCode),
		zap.String("path", req.URL.Path))

	if resp.StatusCode == http.StatusUnauthorized {
		t.invalidate(ctx)
		t.metrics.SessionInvalidationsTotal.Inc()
		logger.Log(ctx).Info(ctx, LogSessionInvalidated, zap.String("path", req.URL.Path))
	}

	return resp, nil
}
