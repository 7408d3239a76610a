package app

import (
	"context"

	"shopauth/internal/session/ports/nav"
	"shopauth/pkg/logger"
)

// Константы для логирования.
const LogGuardDenied = "route guard denied access"

// Decision - решение охранника маршрута.
type Decision bool

// Возможные решения охранника.
const (
	Allow Decision = true
	Deny  Decision = false
)

// RouteGuard синхронно решает, пускать ли на защищенный маршрут,
// по текущему состоянию сессии. Сетевых вызовов не делает.
type RouteGuard struct {
	state     *SessionState
	navigator nav.Navigator
}

// NewRouteGuard создает охранник маршрутов.
func NewRouteGuard(state *SessionState, navigator nav.Navigator) *RouteGuard {
	return &RouteGuard{state: state, navigator: navigator}
}

// Check возвращает Allow при активной сессии. При отказе инициирует
// переход на страницу входа.
func (g *RouteGuard) Check(ctx context.Context) Decision {
	if g.state.Current() {
		return Allow
	}

	logger.Log(ctx).Debug(ctx, LogGuardDenied)
	g.navigator.NavigateTo(ctx, nav.RouteLogin)

	return Deny
}
