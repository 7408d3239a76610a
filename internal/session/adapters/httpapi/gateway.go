package httpapi

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"shopauth/internal/session/app/dto"
	"shopauth/internal/session/domain/entities"
	"shopauth/pkg/logger"
)

// Эндпоинты auth-бэкенда.
const (
	pathRegister   = "/auth/register"
	pathLogin      = "/auth/login"
	pathRefresh    = "/auth/refresh-token"
	pathCheckEmail = "/auth/check-email"
	pathProfile    = "/users/profile"
)

// Константы для логирования.
const (
	LogAPIRegister   = "auth api: register"
	LogAPILogin      = "auth api: login"
	LogAPIRefresh    = "auth api: refresh token" //nolint:gosec
	LogAPICheckEmail = "auth api: check email"
	LogAPIProfile    = "auth api: get profile"
)

// Register регистрирует нового пользователя. Регистрация не
// аутентифицирует вызывающего: сессию устанавливает только вход.
func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.ProfileSummary, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogAPIRegister, zap.String("email", req.Email))

	return call(ctx, c, "Register", func() (*dto.ProfileSummary, error) {
		resp, err := c.post(ctx, pathRegister, registerRequest{
			DisplayName: req.DisplayName,
			Email:       req.Email,
			Password:    req.Password,
			Phone:       req.Phone,
			DateOfBirth: req.DateOfBirth,
		})
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusCreated {
			return nil, c.failure(resp)
		}

		var body registerResponse
		if err := decode(resp, &body); err != nil {
			return nil, err
		}
		if body.Email == "" {
			return nil, entities.ErrMalformedResponse
		}

		return &dto.ProfileSummary{
			DisplayName: body.DisplayName,
			Email:       body.Email,
			Phone:       body.Phone,
		}, nil
	})
}

// Login обменивает учетные данные на пару токенов. Состояние клиента не
// трогает: запись хранилища и обновление сессии - ответственность
// вызывающего (см. app.AuthUsecase).
func (c *Client) Login(ctx context.Context, creds *dto.Credentials) (*entities.TokenPair, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogAPILogin, zap.String("email", creds.Email))

	return call(ctx, c, "Login", func() (*entities.TokenPair, error) {
		resp, err := c.post(ctx, pathLogin, loginRequest{Email: creds.Email, Password: creds.Password})
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return nil, c.failure(resp)
		}

		var body tokenResponse
		if err := decode(resp, &body); err != nil {
			return nil, err
		}
		pair, ok := body.toPair()
		if !ok {
			return nil, entities.ErrMalformedResponse
		}
		return pair, nil
	})
}

// Refresh обменивает refresh-токен на новую пару токенов.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*entities.TokenPair, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogAPIRefresh)

	return call(ctx, c, "Refresh", func() (*entities.TokenPair, error) {
		resp, err := c.post(ctx, pathRefresh, refreshRequest{Token: refreshToken})
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return nil, c.failure(resp)
		}

		var body tokenResponse
		if err := decode(resp, &body); err != nil {
			return nil, err
		}
		pair, ok := body.toPair()
		if !ok {
			return nil, entities.ErrMalformedResponse
		}
		return pair, nil
	})
}

// CheckEmail сообщает, занят ли email. Логически это запрос только на
// чтение; отказ транспорта возвращается ошибкой, чтобы вызывающий мог
// отличить "свободен" от "не удалось проверить".
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	log := logger.Log(ctx)
	log.Debug(ctx, LogAPICheckEmail, zap.String("email", email))

	return call(ctx, c, "CheckEmail", func() (bool, error) {
		resp, err := c.get(ctx, pathCheckEmail, url.Values{"email": {email}})
		if err != nil {
			return false, err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return false, c.failure(resp)
		}

		var body checkEmailResponse
		if err := decode(resp, &body); err != nil {
			return false, err
		}
		return body.Exists, nil
	})
}

// Profile запрашивает профиль аутентифицированного пользователя.
func (c *Client) Profile(ctx context.Context) (*entities.UserProfile, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogAPIProfile)

	return call(ctx, c, "Profile", func() (*entities.UserProfile, error) {
		resp, err := c.get(ctx, pathProfile, nil)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return nil, c.failure(resp)
		}

		var body profileResponse
		if err := decode(resp, &body); err != nil {
			return nil, err
		}
		if body.User.ID == "" {
			return nil, entities.ErrMalformedResponse
		}

		role, ok := entities.ParseRole(body.User.Role)
		if !ok {
			return nil, entities.ErrMalformedResponse
		}

		return &entities.UserProfile{
			ID:          body.User.ID,
			DisplayName: body.User.DisplayName,
			Email:       body.User.Email,
			Role:        role,
			Avatar:      body.User.Avatar,
			Phone:       body.User.Phone,
			DateOfBirth: body.User.DateOfBirth,
			IsActive:    body.User.IsActive,
		}, nil
	})
}
