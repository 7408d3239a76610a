// Package httperr отображает ошибки сессионного ядра на HTTP статусы
// витрины.
package httperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"shopauth/internal/session/domain/entities"
)

// StatusFor возвращает HTTP статус для ошибки сессионного ядра.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, entities.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, entities.ErrSessionExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, entities.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, entities.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, entities.ErrEmailTaken):
		return fiber.StatusConflict
	case errors.Is(err, entities.ErrNetworkUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, entities.ErrMalformedResponse), errors.Is(err, entities.ErrServer):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// Send отправляет клиенту ошибку с соответствующим статусом.
func Send(ctx fiber.Ctx, err error) error {
	if sendErr := ctx.Status(StatusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	}); sendErr != nil {
		return fmt.Errorf("sending error response: %w", sendErr)
	}
	return nil
}
