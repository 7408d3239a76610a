package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"shopauth/internal/session/domain/entities"
	"shopauth/internal/session/ports/api"
	"shopauth/internal/session/ports/nav"
	"shopauth/internal/session/ports/notify"
	"shopauth/pkg/logger"
)

// Константы для логирования.
const (
	LogResolveStarted   = "profile resolution started"
	LogResolveDenied    = "profile resolution denied, no active session"
	LogResolveFailed    = "profile resolution failed"
	LogResolveSucceeded = "profile resolution succeeded"
)

const msgProfileUnavailable = "Failed to load your profile"

// Resolution - результат разрешения профиля перед входом на защищенную
// страницу: либо профиль, либо маршрут перенаправления.
type Resolution struct {
	Profile  *entities.UserProfile
	Redirect nav.Route
}

// Resolved сообщает, завершилось ли разрешение профилем.
func (r *Resolution) Resolved() bool {
	return r.Profile != nil
}

// UserUsecase загружает профиль текущего пользователя для защищенных
// страниц.
type UserUsecase struct {
	api      api.AuthAPI
	state    *SessionState
	notifier notify.Notifier
}

// NewUserUsecase создает сценарии работы с профилем.
func NewUserUsecase(authAPI api.AuthAPI, state *SessionState, notifier notify.Notifier) *UserUsecase {
	return &UserUsecase{api: authAPI, state: state, notifier: notifier}
}

// Resolve загружает профиль текущего пользователя. Без активной сессии
// или при истекшей сессии возвращает перенаправление на страницу входа;
// при прочих отказах - на главную с уведомлением. Уведомление об
// истекшей сессии показывает транслятор ошибок, повторного здесь нет.
func (u *UserUsecase) Resolve(ctx context.Context) (*Resolution, error) {
	logger.Log(ctx).Debug(ctx, LogResolveStarted)

	if !u.state.Current() {
		logger.Log(ctx).Debug(ctx, LogResolveDenied)
		return &Resolution{Redirect: nav.RouteLogin}, nil
	}

	profile, err := u.api.Profile(ctx)
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogResolveFailed, zap.Error(err))

		if errors.Is(err, entities.ErrSessionExpired) {
			return &Resolution{Redirect: nav.RouteLogin}, nil
		}

		u.notifier.Error(ctx, msgProfileUnavailable)
		return &Resolution{Redirect: nav.RouteHome}, nil
	}

	logger.Log(ctx).Debug(ctx, LogResolveSucceeded, zap.String("user_id", profile.ID))
	return &Resolution{Profile: profile}, nil
}
