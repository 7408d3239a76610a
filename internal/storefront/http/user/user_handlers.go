// Package user содержит HTTP обработчики профиля витрины.
package user

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"shopauth/internal/session/app"
	"shopauth/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerProfile = "user handler: profile"

	ErrorFailedToServeRequest = "failed to serve request"
)

// profileResponse - представление профиля для клиента витрины.
type profileResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Avatar      string `json:"avatar,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// Handler содержит HTTP обработчики профиля.
type Handler struct {
	users *app.UserUsecase
}

// NewHandler создает новый экземпляр обработчика профиля.
func NewHandler(users *app.UserUsecase) *Handler {
	return &Handler{users: users}
}

// Profile обрабатывает запрос профиля текущего пользователя. При
// неразрешенном профиле клиент перенаправляется туда, куда решил
// резолвер.
func (h *Handler) Profile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerProfile)

	resolution, err := h.users.Resolve(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return fmt.Errorf("resolving profile: %w", ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		}))
	}

	if !resolution.Resolved() {
		return ctx.Redirect().Status(fiber.StatusFound).To(string(resolution.Redirect))
	}

	profile := resolution.Profile
	if err := ctx.Status(http.StatusOK).JSON(profileResponse{
		ID:          profile.ID,
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
		Role:        string(profile.Role),
		Avatar:      profile.Avatar,
		Phone:       profile.Phone,
		DateOfBirth: profile.DateOfBirth,
		IsActive:    profile.IsActive,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
