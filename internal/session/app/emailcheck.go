package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"shopauth/internal/session/observability"
	"shopauth/internal/session/ports/api"
	"shopauth/pkg/logger"
)

// Константы для логирования.
const (
	LogEmailCheckScheduled = "email availability check scheduled"
	LogEmailCheckFailed    = "email availability check failed"
	LogEmailCheckDone      = "email availability check completed"
)

// EmailCheckResult - итог проверки доступности адреса. Verified=false
// означает, что проверить не удалось (сеть недоступна): адрес в этом
// случае не считается занятым.
type EmailCheckResult struct {
	Email     string
	Available bool
	Verified  bool
}

// EmailChecker выполняет отложенную проверку занятости адреса при вводе
// в форме регистрации. Последовательные вызовы Submit в пределах окна
// задержки схлопываются в один сетевой запрос; устаревшие запросы
// отменяются, в канал результатов попадает только последний исход.
type EmailChecker struct {
	api      api.AuthAPI
	debounce time.Duration
	metrics  *observability.Metrics

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	results chan EmailCheckResult
}

// NewEmailChecker создает проверку адресов с заданным окном задержки.
func NewEmailChecker(authAPI api.AuthAPI, debounce time.Duration, metrics *observability.Metrics) *EmailChecker {
	return &EmailChecker{
		api:      authAPI,
		debounce: debounce,
		metrics:  metrics,
		results:  make(chan EmailCheckResult, 1),
	}
}

// Results возвращает канал итогов. Канал буферизован на одно значение,
// непрочитанный итог вытесняется более свежим.
func (c *EmailChecker) Results() <-chan EmailCheckResult {
	return c.results
}

// Submit планирует проверку адреса. Предыдущая незавершенная проверка
// отменяется: повторный ввод до истечения окна сдвигает таймер, а уже
// отправленный запрос с устаревшим адресом теряет право на публикацию
// результата.
func (c *EmailChecker) Submit(ctx context.Context, email string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	gen := c.gen

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.timer != nil {
		c.timer.Stop()
	}

	logger.Log(ctx).Debug(ctx, LogEmailCheckScheduled, zap.String("email", email))

	checkCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.timer = time.AfterFunc(c.debounce, func() {
		c.check(checkCtx, gen, email)
	})
}

// check выполняет сетевой запрос и публикует результат, если проверка
// не была вытеснена более свежей.
func (c *EmailChecker) check(ctx context.Context, gen uint64, email string) {
	exists, err := c.api.CheckEmail(ctx, email)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}
	c.cancel = nil

	result := EmailCheckResult{Email: email}
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogEmailCheckFailed, zap.Error(err))
		c.metrics.EmailChecksTotal.WithLabelValues(observability.ResultFailure).Inc()
	} else {
		result.Available = !exists
		result.Verified = true
		c.metrics.EmailChecksTotal.WithLabelValues(observability.ResultSuccess).Inc()
		logger.Log(ctx).Debug(ctx, LogEmailCheckDone,
			zap.String("email", email), zap.Bool("available", result.Available))
	}

	select {
	case c.results <- result:
	default:
		select {
		case <-c.results:
		default:
		}
		c.results <- result
	}
}
