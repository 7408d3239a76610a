// Package notify содержит адаптеры пользовательских уведомлений.
package notify

import (
	"context"

	"go.uber.org/zap"

	"shopauth/pkg/logger"
)

// Константы для логирования.
const logNotification = "user notification"

// Уровни уведомлений.
const (
	severitySuccess = "success"
	severityInfo    = "info"
	severityError   = "error"
)

// LogNotifier пишет уведомления в журнал приложения. Используется в
// интерфейсах без собственного канала уведомлений.
type LogNotifier struct{}

// NewLogNotifier создает журнальный адаптер уведомлений.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Success сообщает об успешной операции.
func (n *LogNotifier) Success(ctx context.Context, msg string) {
	logger.Log(ctx).Info(ctx, logNotification,
		zap.String("severity", severitySuccess), zap.String("message", msg))
}

// Info сообщает нейтральную информацию.
func (n *LogNotifier) Info(ctx context.Context, msg string) {
	logger.Log(ctx).Info(ctx, logNotification,
		zap.String("severity", severityInfo), zap.String("message", msg))
}

// Error сообщает об ошибке.
func (n *LogNotifier) Error(ctx context.Context, msg string) {
	logger.Log(ctx).Warn(ctx, logNotification,
		zap.String("severity", severityError), zap.String("message", msg))
}
