package notify

import "context"

// Severity - уровень уведомления.
type Severity string

// Поддерживаемые уровни.
const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
)

// Notification - уведомление для отображения пользователю.
type Notification struct {
	Severity Severity
	Message  string
}

// ChannelNotifier доставляет уведомления в канал для интерфейсов с
// собственным слоем отображения. Канал буферизован, при переполнении
// старые уведомления вытесняются новыми.
type ChannelNotifier struct {
	ch chan Notification
}

// NewChannelNotifier создает канальный адаптер с заданной емкостью
// буфера.
func NewChannelNotifier(size int) *ChannelNotifier {
	return &ChannelNotifier{ch: make(chan Notification, size)}
}

// Notifications возвращает канал уведомлений.
func (n *ChannelNotifier) Notifications() <-chan Notification {
	return n.ch
}

// Success сообщает об успешной операции.
func (n *ChannelNotifier) Success(_ context.Context, msg string) {
	n.push(Notification{Severity: SeveritySuccess, Message: msg})
}

// Info сообщает нейтральную информацию.
func (n *ChannelNotifier) Info(_ context.Context, msg string) {
	n.push(Notification{Severity: SeverityInfo, Message: msg})
}

// Error сообщает об ошибке.
func (n *ChannelNotifier) Error(_ context.Context, msg string) {
	n.push(Notification{Severity: SeverityError, Message: msg})
}

func (n *ChannelNotifier) push(notification Notification) {
	for {
		select {
		case n.ch <- notification:
			return
		default:
			select {
			case <-n.ch:
			default:
			}
		}
	}
}
