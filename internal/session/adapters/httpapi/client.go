package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"shopauth/internal/session/config"
	"shopauth/internal/session/domain/entities"
	"shopauth/internal/session/observability"
	"shopauth/internal/session/ports/notify"
	"shopauth/internal/session/ports/store"
	"shopauth/internal/session/resilience"
)

// Известные сообщения отказов бэкенда.
const (
	backendMsgUserExists     = "User already exist"
	backendMsgNoUserPrefix   = "User does not exist"
	backendMsgBadCredentials = "Invalid credentials"
)

// Client - REST-клиент auth-бэкенда. Транспорт собирается цепочкой:
// authorizer прикрепляет bearer-токен до отправки, translator
// обрабатывает ответ после получения. Уведомления пользователю
// показывает сам клиент - ровно одно на отказавшую операцию, сколько бы
// повторных попыток под ней ни было.
type Client struct {
	http       *http.Client
	baseURL    string
	notifier   notify.Notifier
	resilience *resilience.ServiceResilience
}

// NewClient создает клиент auth-бэкенда.
func NewClient(
	cfg *config.APIConfig,
	st store.TokenStore,
	notifier notify.Notifier,
	invalidate func(ctx context.Context),
	metrics *observability.Metrics,
) *Client {
	transport := newTranslator(
		newAuthorizer(http.DefaultTransport, st, cfg.SendEmptyBearer),
		invalidate,
		metrics,
	)

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		notifier:   notifier,
		resilience: resilience.NewServiceResilience("auth-backend", shouldRetry),
	}
}

// shouldRetry разрешает повторы только для транспортных и серверных
// отказов: отказ по существу (400/401) повторять бессмысленно.
func shouldRetry(err error) bool {
	return errors.Is(err, entities.ErrNetworkUnavailable) || errors.Is(err, entities.ErrServer)
}

// call выполняет операцию шлюза под отказоустойчивостью и по ее итогу
// приводит ошибку к доменной таксономии с не более чем одним
// уведомлением на отказ.
func call[T any](ctx context.Context, c *Client, name string, op func() (T, error)) (T, error) {
	out, err := resilience.ExecuteWithResult(ctx, c.resilience, name, op)
	if err != nil {
		var zero T
		return zero, c.fail(ctx, err)
	}
	return out, nil
}

// fail завершает отказавшую операцию: отказ открытого Circuit Breaker
// переводится в доменную таксономию, пользователю показывается ровно
// одно уведомление. Отмена контекста и некорректный ответ остаются без
// уведомления: первая - не отказ, второй виден вызывающему как
// ErrMalformedResponse.
func (c *Client) fail(ctx context.Context, err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		c.notifier.Error(ctx, msgUnavailable)
		return fmt.Errorf("%w: %w", entities.ErrNetworkUnavailable, err)
	}

	var backend *backendError
	switch {
	case errors.As(err, &backend):
		c.notifier.Error(ctx, backend.message)
	case errors.Is(err, entities.ErrNetworkUnavailable):
		c.notifier.Error(ctx, MessageFor(0, ""))
	}

	return err
}

// post выполняет POST с JSON-телом.
func (c *Client) post(ctx context.Context, path string, in any) (*http.Response, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req)
}

// get выполняет GET с параметрами запроса.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	return c.send(req)
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("request canceled: %w", err)
		}
		return nil, fmt.Errorf("%w: %w", entities.ErrNetworkUnavailable, err)
	}
	return resp, nil
}

// failure преобразует не-2xx ответ в ошибку доменной таксономии,
// сохраняя рядом сообщение для пользователя.
func (c *Client) failure(resp *http.Response) error {
	var body errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	_ = json.Unmarshal(data, &body)

	var err error
	switch {
	case resp.StatusCode == http.StatusBadRequest && body.Message == backendMsgUserExists:
		err = entities.ErrEmailTaken
	case resp.StatusCode == http.StatusBadRequest && strings.HasPrefix(body.Message, backendMsgNoUserPrefix):
		err = entities.ErrUserNotFound
	case resp.StatusCode == http.StatusBadRequest && body.Message == backendMsgBadCredentials:
		err = entities.ErrInvalidCredentials
	case resp.StatusCode == http.StatusUnauthorized:
		err = entities.ErrSessionExpired
	case resp.StatusCode == http.StatusForbidden:
		err = entities.ErrForbidden
	case resp.StatusCode >= http.StatusInternalServerError:
		err = fmt.Errorf("%w: status %d", entities.ErrServer, resp.StatusCode)
	default:
		err = fmt.Errorf("%w: status %d", entities.ErrUnknown, resp.StatusCode)
	}

	return &backendError{err: err, message: MessageFor(resp.StatusCode, body.Message)}
}

// decode декодирует тело ответа в out; любое расхождение с ожидаемой
// формой дает ErrMalformedResponse.
func decode(resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", entities.ErrMalformedResponse, err)
	}
	return nil
}
