// Package auth содержит HTTP обработчики аутентификации витрины.
package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"shopauth/internal/session/app"
	"shopauth/internal/session/app/dto"
	"shopauth/internal/storefront/http/httperr"
	"shopauth/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister   = "auth handler: register"
	LogHandlerLogin      = "auth handler: login"
	LogHandlerLogout     = "auth handler: logout"
	LogHandlerRefresh    = "auth handler: refresh"
	LogHandlerCheckEmail = "auth handler: check email"
	LogHandlerSession    = "auth handler: session status"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

const emailCheckWait = 3 * time.Second

// Handler содержит HTTP обработчики аутентификации.
type Handler struct {
	auth    *app.AuthUsecase
	state   *app.SessionState
	checker *app.EmailChecker
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(auth *app.AuthUsecase, state *app.SessionState, checker *app.EmailChecker) *Handler {
	return &Handler{
		auth:    auth,
		state:   state,
		checker: checker,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return fmt.Errorf("binding JSON: %w", ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		}))
	}

	if err := h.auth.Register(requestCtx, &req); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.Status(http.StatusCreated).JSON(fiber.Map{
		"authenticated": h.state.Current(),
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.Credentials
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return fmt.Errorf("binding JSON: %w", ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		}))
	}

	if err := h.auth.Login(requestCtx, &req); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Send(ctx, err)
	}

	return h.sendSession(ctx)
}

// Logout обрабатывает запрос на выход пользователя.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	if err := h.auth.Logout(requestCtx); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Send(ctx, err)
	}

	return h.sendSession(ctx)
}

// Refresh обрабатывает запрос на обновление пары токенов.
func (h *Handler) Refresh(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRefresh)

	if err := h.auth.Refresh(requestCtx); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Send(ctx, err)
	}

	return h.sendSession(ctx)
}

// CheckEmail обрабатывает запрос проверки доступности адреса. Проверка
// идет через отложенный механизм формы регистрации: частые запросы
// схлопываются, ответ ждет фактического результата.
func (h *Handler) CheckEmail(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCheckEmail)

	email := ctx.Query("email")
	if email == "" {
		return fmt.Errorf("validating request: %w", ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "email is required",
		}))
	}

	h.checker.Submit(requestCtx, email)

	timer := time.NewTimer(emailCheckWait)
	defer timer.Stop()

	for {
		select {
		case result := <-h.checker.Results():
			if result.Email != email {
				continue
			}
			if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
				"available": result.Available,
				"verified":  result.Verified,
			}); err != nil {
				return fmt.Errorf("sending response: %w", err)
			}
			return nil
		case <-timer.C:
			// Запрос вытеснен более свежим вводом.
			if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
				"available": false,
				"verified":  false,
			}); err != nil {
				return fmt.Errorf("sending response: %w", err)
			}
			return nil
		}
	}
}

// Session возвращает текущее состояние сессии.
func (h *Handler) Session(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerSession)

	return h.sendSession(ctx)
}

// sendSession отправляет состояние сессии и известные claims.
func (h *Handler) sendSession(ctx fiber.Ctx) error {
	body := fiber.Map{"authenticated": h.state.Current()}
	if claims := h.state.Claims(); claims != nil {
		body["userId"] = claims.UserID
		body["displayName"] = claims.DisplayName
		body["role"] = string(claims.Role)
	}

	if err := ctx.Status(http.StatusOK).JSON(body); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
