// Package nav содержит адаптеры навигации.
package nav

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"shopauth/internal/session/ports/nav"
	"shopauth/pkg/logger"
)

// Константы для логирования.
const logNavigation = "navigation requested"

// LogNavigator фиксирует запросы навигации в журнале и запоминает
// последний целевой маршрут. Используется в интерфейсах, где переходы
// выполняет внешний слой (HTTP-перенаправления, печать в терминал).
type LogNavigator struct {
	mu   sync.RWMutex
	last nav.Route
}

// NewLogNavigator создает журнальный адаптер навигации.
func NewLogNavigator() *LogNavigator {
	return &LogNavigator{last: nav.RouteHome}
}

// NavigateTo фиксирует запрошенный переход.
func (n *LogNavigator) NavigateTo(ctx context.Context, route nav.Route) {
	n.mu.Lock()
	n.last = route
	n.mu.Unlock()

	logger.Log(ctx).Debug(ctx, logNavigation, zap.String("route", string(route)))
}

// Last возвращает последний запрошенный маршрут.
func (n *LogNavigator) Last() nav.Route {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.last
}
