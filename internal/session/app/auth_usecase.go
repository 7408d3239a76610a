package app

import (
	"context"
	"fmt"
	"net/mail"

	"go.uber.org/zap"

	"shopauth/internal/session/app/dto"
	"shopauth/internal/session/config"
	"shopauth/internal/session/domain/entities"
	"shopauth/internal/session/observability"
	"shopauth/internal/session/ports/api"
	"shopauth/internal/session/ports/nav"
	"shopauth/internal/session/ports/notify"
	"shopauth/internal/session/ports/store"
	"shopauth/internal/session/token"
	"shopauth/pkg/logger"
)

// Константы для логирования.
const (
	LogLoginStarted      = "login started"
	LogLoginFailed       = "login failed"
	LogLoginSucceeded    = "login succeeded"
	LogRegisterStarted   = "registration started"
	LogRegisterFailed    = "registration failed"
	LogRegisterSucceeded = "registration succeeded"
	LogRefreshStarted    = "token refresh started"
	LogRefreshFailed     = "token refresh failed"
	LogRefreshSucceeded  = "token refresh succeeded"
	LogLogoutDone        = "logout completed"
	LogStoreSetError     = "failed to persist token pair"
	LogStoreClearError   = "failed to clear token store"
)

// Сообщения об ошибках.
const (
	errMsgEmptyCredentials  = "email and password are required"
	errMsgEmptyRegistration = "name, email and password are required"
	errMsgBadEmail          = "email address is malformed"
	errMsgOpaqueToken       = "received token pair is not decodable"
)

// Сообщения для пользователя.
const (
	msgSignedIn   = "You have successfully signed in"
	msgRegistered = "Registration successful, please sign in"
	msgSignedOut  = "You have signed out"
)

// AuthUsecase реализует операции входа, регистрации, обновления пары
// токенов и выхода. Единственный легальный мутатор SessionState помимо
// инвалидатора транслятора ошибок.
type AuthUsecase struct {
	api          api.AuthAPI
	store        store.TokenStore
	state        *SessionState
	decoder      *token.Decoder
	notifier     notify.Notifier
	navigator    nav.Navigator
	metrics      *observability.Metrics
	postRegister string
}

// NewAuthUsecase создает сценарии аутентификации.
func NewAuthUsecase(
	authAPI api.AuthAPI,
	st store.TokenStore,
	state *SessionState,
	decoder *token.Decoder,
	notifier notify.Notifier,
	navigator nav.Navigator,
	metrics *observability.Metrics,
	postRegister string,
) *AuthUsecase {
	return &AuthUsecase{
		api:          authAPI,
		store:        st,
		state:        state,
		decoder:      decoder,
		notifier:     notifier,
		navigator:    navigator,
		metrics:      metrics,
		postRegister: postRegister,
	}
}

// Login выполняет вход: обменивает учетные данные на пару токенов,
// сохраняет ее, переводит состояние сессии в true и направляет
// пользователя на главную. Порядок строгий: хранилище обновляется до
// состояния, состояние - до навигации.
func (u *AuthUsecase) Login(ctx context.Context, creds *dto.Credentials) error {
	logger.Log(ctx).Info(ctx, LogLoginStarted, zap.String("email", creds.Email))

	if creds.Email == "" || creds.Password == "" {
		return fmt.Errorf("%w: %s", entities.ErrValidation, errMsgEmptyCredentials)
	}
	if _, err := mail.ParseAddress(creds.Email); err != nil {
		return fmt.Errorf("%w: %s", entities.ErrValidation, errMsgBadEmail)
	}

	pair, err := u.api.Login(ctx, creds)
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogLoginFailed, zap.Error(err))
		u.metrics.LoginsTotal.WithLabelValues(observability.ResultFailure).Inc()
		return err
	}

	claims := u.decoder.Decode(pair.AccessToken)
	if claims == nil {
		u.metrics.LoginsTotal.WithLabelValues(observability.ResultFailure).Inc()
		return fmt.Errorf("%w: %s", entities.ErrMalformedResponse, errMsgOpaqueToken)
	}

	if err := u.store.Set(ctx, pair); err != nil {
		logger.Log(ctx).Error(ctx, LogStoreSetError, zap.Error(err))
		u.metrics.LoginsTotal.WithLabelValues(observability.ResultFailure).Inc()
		return err
	}

	u.state.set(ctx, true, claims)
	u.metrics.LoginsTotal.WithLabelValues(observability.ResultSuccess).Inc()
	logger.Log(ctx).Info(ctx, LogLoginSucceeded, zap.String("user_id", claims.UserID))

	u.notifier.Success(ctx, msgSignedIn)
	u.navigator.NavigateTo(ctx, nav.RouteHome)

	return nil
}

// Register регистрирует нового пользователя. В ручном режиме после
// успеха пользователь направляется на страницу входа; в автоматическом
// сразу выполняется Login с теми же учетными данными.
func (u *AuthUsecase) Register(ctx context.Context, req *dto.RegisterRequest) error {
	logger.Log(ctx).Info(ctx, LogRegisterStarted, zap.String("email", req.Email))

	if req.DisplayName == "" || req.Email == "" || req.Password == "" {
		return fmt.Errorf("%w: %s", entities.ErrValidation, errMsgEmptyRegistration)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: %s", entities.ErrValidation, errMsgBadEmail)
	}

	if _, err := u.api.Register(ctx, req); err != nil {
		logger.Log(ctx).Warn(ctx, LogRegisterFailed, zap.Error(err))
		u.metrics.RegistrationsTotal.WithLabelValues(observability.ResultFailure).Inc()
		return err
	}

	u.metrics.RegistrationsTotal.WithLabelValues(observability.ResultSuccess).Inc()
	logger.Log(ctx).Info(ctx, LogRegisterSucceeded, zap.String("email", req.Email))

	if u.postRegister == config.PostRegisterAuto {
		return u.Login(ctx, &dto.Credentials{Email: req.Email, Password: req.Password})
	}

	u.notifier.Success(ctx, msgRegistered)
	u.navigator.NavigateTo(ctx, nav.RouteLogin)

	return nil
}

// Refresh обменивает refresh-токен на новую пару. При отсутствии пары
// или отказе сервера сессия завершается: хранилище очищается, состояние
// переводится в false.
func (u *AuthUsecase) Refresh(ctx context.Context) error {
	logger.Log(ctx).Debug(ctx, LogRefreshStarted)

	pair, err := u.store.Get(ctx)
	if err != nil || pair == nil {
		u.metrics.RefreshesTotal.WithLabelValues(observability.ResultFailure).Inc()
		u.terminate(ctx)
		if err != nil {
			return err
		}
		return entities.ErrSessionExpired
	}

	fresh, err := u.api.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogRefreshFailed, zap.Error(err))
		u.metrics.RefreshesTotal.WithLabelValues(observability.ResultFailure).Inc()
		u.terminate(ctx)
		return err
	}

	claims := u.decoder.Decode(fresh.AccessToken)
	if claims == nil {
		u.metrics.RefreshesTotal.WithLabelValues(observability.ResultFailure).Inc()
		u.terminate(ctx)
		return fmt.Errorf("%w: %s", entities.ErrMalformedResponse, errMsgOpaqueToken)
	}

	if err := u.store.Set(ctx, fresh); err != nil {
		logger.Log(ctx).Error(ctx, LogStoreSetError, zap.Error(err))
		u.metrics.RefreshesTotal.WithLabelValues(observability.ResultFailure).Inc()
		return err
	}

	u.state.set(ctx, true, claims)
	u.metrics.RefreshesTotal.WithLabelValues(observability.ResultSuccess).Inc()
	logger.Log(ctx).Debug(ctx, LogRefreshSucceeded)

	return nil
}

// Logout завершает сессию локально: очищает хранилище, переводит
// состояние в false и направляет пользователя на главную. Серверного
// вызова нет, операция не может отказать из-за сети.
func (u *AuthUsecase) Logout(ctx context.Context) error {
	if err := u.store.Clear(ctx); err != nil {
		logger.Log(ctx).Warn(ctx, LogStoreClearError, zap.Error(err))
	}

	u.state.set(ctx, false, nil)
	u.metrics.LogoutsTotal.Inc()
	logger.Log(ctx).Info(ctx, LogLogoutDone)

	u.notifier.Info(ctx, msgSignedOut)
	u.navigator.NavigateTo(ctx, nav.RouteHome)

	return nil
}

// terminate очищает хранилище и состояние без навигации.
func (u *AuthUsecase) terminate(ctx context.Context) {
	if err := u.store.Clear(ctx); err != nil {
		logger.Log(ctx).Warn(ctx, LogStoreClearError, zap.Error(err))
	}
	u.state.set(ctx, false, nil)
}
