package app

import (
	"context"

	"go.uber.org/zap"

	"shopauth/internal/session/ports/store"
	"shopauth/pkg/logger"
)

// Константы для логирования.
const (
	LogSessionInvalidated   = "session invalidated after unauthorized response"
	LogInvalidateClearError = "failed to clear token store during invalidation"
)

// NewSessionInvalidator возвращает замыкание, которое очищает хранилище
// токенов и переводит состояние сессии в false. Передается транслятору
// ошибок HTTP-клиента: это единственный путь мутации состояния вне
// AuthUsecase.
func NewSessionInvalidator(st store.TokenStore, state *SessionState) func(ctx context.Context) {
	return func(ctx context.Context) {
		if err := st.Clear(ctx); err != nil {
			logger.Log(ctx).Warn(ctx, LogInvalidateClearError, zap.Error(err))
		}
		state.set(ctx, false, nil)
		logger.Log(ctx).Info(ctx, LogSessionInvalidated)
	}
}
