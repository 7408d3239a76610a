// Package api определяет контракт клиента auth-бэкенда.
package api

import (
	"context"

	"shopauth/internal/session/app/dto"
	"shopauth/internal/session/domain/entities"
)

// AuthAPI - единственный компонент, которому разрешено обращаться к
// эндпоинтам /auth/* и /users/profile бэкенда. Все отказы транспорта и
// декодирования преобразуются в ошибки из domain/entities и никогда не
// всплывают в сыром виде.
type AuthAPI interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.ProfileSummary, error)

	Login(ctx context.Context, creds *dto.Credentials) (*entities.TokenPair, error)

	Refresh(ctx context.Context, refreshToken string) (*entities.TokenPair, error)

	CheckEmail(ctx context.Context, email string) (bool, error)

	Profile(ctx context.Context) (*entities.UserProfile, error)
}
