package middleware

import (
	"github.com/gofiber/fiber/v3"

	"shopauth/internal/session/app"
	"shopauth/internal/session/ports/nav"
	"shopauth/pkg/logger"
)

// Константы для логирования.
const logGuardRedirect = "redirecting unauthenticated request"

// NewGuardMiddleware создает промежуточное ПО, пускающее на защищенные
// маршруты только при активной сессии. Решение принимается синхронно по
// состоянию сессии, без сетевых вызовов; при отказе клиент
// перенаправляется на страницу входа.
func NewGuardMiddleware(guard *app.RouteGuard) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()

		if guard.Check(requestCtx) == app.Allow {
			return ctx.Next()
		}

		logger.Log(requestCtx).Debug(requestCtx, logGuardRedirect)
		return ctx.Redirect().Status(fiber.StatusFound).To(string(nav.RouteLogin))
	}
}
