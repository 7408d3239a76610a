package resilience

import (
	"context"

	"go.uber.org/zap"

	"shopauth/pkg/logger"
)

// ServiceResilience обеспечивает отказоустойчивость сервисных вызовов:
// повторные попытки внутри Circuit Breaker.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает обертку отказоустойчивости для сервиса.
// shouldRetry может быть nil, тогда повторяются все ошибки кроме отмены
// контекста.
func NewServiceResilience(serviceName string, shouldRetry func(error) bool) *ServiceResilience {
	retryConfig := DefaultRetryConfig()
	if shouldRetry != nil {
		retryConfig.ShouldRetry = shouldRetry
	}

	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, DefaultCircuitBreakerConfig()),
		retry:          NewRetry(serviceName, retryConfig),
	}
}

// Execute выполняет операцию с отказоустойчивостью.
func (r *ServiceResilience) Execute(ctx context.Context, operationName string, operation func() error) error {
	log := logger.Log(ctx).With(
		zap.String("service", r.serviceName),
		zap.String("operation", operationName),
	)
	log.Debug(ctx, "executing operation with resilience")

	return r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, operation)
	})
}

// ExecuteWithResult выполняет операцию с отказоустойчивостью и возвращает
// результат.
func ExecuteWithResult[T any](
	ctx context.Context,
	r *ServiceResilience,
	operationName string,
	operation func() (T, error),
) (T, error) {
	var result T

	err := r.Execute(ctx, operationName, func() error {
		var opErr error
		result, opErr = operation()
		return opErr
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
