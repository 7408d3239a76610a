package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend failure")

func testBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   3,
		Timeout:          30 * time.Millisecond,
		SuccessThreshold: 2,
	}
}

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	ctx := context.Background()
	cb := NewCircuitBreaker("test", testBreakerConfig())

	fail := func() error { return errBackend }

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(ctx, fail), errBackend)
	}

	// Порог достигнут, запросы блокируются не доходя до функции.
	calls := 0
	err := cb.Execute(ctx, func() error {
		calls++
		return nil
	})

	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Zero(t, calls)
}

func TestCircuitBreakerRecovers(t *testing.T) {
	ctx := context.Background()
	cb := NewCircuitBreaker("test", testBreakerConfig())

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(ctx, func() error { return errBackend }), errBackend)
	}
	require.ErrorIs(t, cb.Execute(ctx, func() error { return nil }), ErrCircuitOpen)

	time.Sleep(40 * time.Millisecond)

	// Полуоткрытое состояние: успехи до порога закрывают контур.
	require.NoError(t, cb.Execute(ctx, func() error { return nil }))
	require.NoError(t, cb.Execute(ctx, func() error { return nil }))

	for i := 0; i < 2; i++ {
		require.ErrorIs(t, cb.Execute(ctx, func() error { return errBackend }), errBackend)
	}
	// Контур закрыт, две ошибки ниже порога не блокируют запросы.
	require.NoError(t, cb.Execute(ctx, func() error { return nil }))
}

func TestCircuitBreakerReopensFromHalfOpen(t *testing.T) {
	ctx := context.Background()
	cb := NewCircuitBreaker("test", testBreakerConfig())

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(ctx, func() error { return errBackend }), errBackend)
	}

	time.Sleep(40 * time.Millisecond)

	// Единственная ошибка в полуоткрытом состоянии снова открывает контур.
	require.ErrorIs(t, cb.Execute(ctx, func() error { return errBackend }), errBackend)
	require.ErrorIs(t, cb.Execute(ctx, func() error { return nil }), ErrCircuitOpen)
}
