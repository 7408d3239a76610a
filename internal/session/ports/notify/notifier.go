// Package notify определяет канал временных уведомлений (toast).
package notify

import "context"

// Notifier доставляет пользователю одноразовые уведомления. Каждый отказ
// операции дает ровно одно уведомление с конкретным нетехническим
// сообщением; молчаливые отказы запрещены.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Info(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}
