// Package http содержит компоненты HTTP сервера витрины.
package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shopauth/internal/session/adapters/notify"
	"shopauth/internal/session/app"
	"shopauth/internal/storefront/http/auth"
	"shopauth/internal/storefront/http/middleware"
	"shopauth/internal/storefront/http/user"
)

// Deps - зависимости маршрутизатора витрины.
type Deps struct {
	Auth     *app.AuthUsecase
	Users    *app.UserUsecase
	State    *app.SessionState
	Guard    *app.RouteGuard
	Checker  *app.EmailChecker
	Notifier *notify.ChannelNotifier
	Registry *prometheus.Registry
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Deps) {
	authHandler := auth.NewHandler(deps.Auth, deps.State, deps.Checker)
	userHandler := user.NewHandler(deps.Users)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	api := app.Group("/api")

	// Auth routes (публичные).
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Get("/check-email", authHandler.CheckEmail)
	authRoutes.Get("/session", authHandler.Session)

	// Уведомления, накопленные сессионным ядром.
	api.Get("/notifications", newNotificationsHandler(deps.Notifier))

	// Защищенные маршруты.
	userRoutes := api.Group("/users")
	userRoutes.Use(middleware.NewGuardMiddleware(deps.Guard))
	userRoutes.Get("/profile", userHandler.Profile)

	// Метрики.
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}

// notificationView - уведомление в ответе витрины.
type notificationView struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// newNotificationsHandler создает обработчик, отдающий накопленные
// уведомления и опустошающий буфер.
func newNotificationsHandler(notifier *notify.ChannelNotifier) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		views := make([]notificationView, 0)
		for {
			select {
			case n := <-notifier.Notifications():
				views = append(views, notificationView{
					Severity: string(n.Severity),
					Message:  n.Message,
				})
				continue
			default:
			}
			break
		}

		if err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"notifications": views,
		}); err != nil {
			return fmt.Errorf("sending response: %w", err)
		}
		return nil
	}
}
