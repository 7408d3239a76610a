// Package nav определяет контракт навигации для потребителей сессии.
package nav

import "context"

// Route - целевая точка навигации.
type Route string

// Маршруты, к которым обращается ядро сессии.
const (
	RouteHome  Route = "/"
	RouteLogin Route = "/login"
)

// Navigator выполняет навигационный побочный эффект. Реализация зависит
// от фронтенда: HTTP-приложение отвечает редиректом, CLI печатает
// подсказку, тесты записывают переходы.
type Navigator interface {
	NavigateTo(ctx context.Context, route Route)
}
