// Package token декодирует claims из access-токена.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopauth/internal/session/domain/entities"
)

// payloadClaims адаптирует payload-сегмент токена к доменной модели.
type payloadClaims struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// Decoder извлекает claims из access-токена без проверки подписи.
// Проверка подписи - обязанность бэкенда; клиентское декодирование
// служит только подсказкой для UI и авторизационных решений интерфейса.
type Decoder struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewDecoder создает новый декодер claims.
func NewDecoder() *Decoder {
	return &Decoder{
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

// Decode возвращает claims токена либо nil. Никогда не паникует и не
// возвращает ошибок: любой из отказов - пустой токен, не три сегмента,
// некорректный base64url, некорректный JSON, отсутствующее обязательное
// поле, неизвестная роль, истекший exp - дает nil, который вызывающие
// обязаны трактовать как "нет аутентифицированного пользователя".
func (d *Decoder) Decode(raw string) *entities.Claims {
	if raw == "" {
		return nil
	}

	var payload payloadClaims
	if _, _, err := d.parser.ParseUnverified(raw, &payload); err != nil {
		return nil
	}

	if payload.ExpiresAt != nil && payload.ExpiresAt.Before(d.now()) {
		return nil
	}

	role, ok := entities.ParseRole(payload.Role)
	if !ok {
		return nil
	}
	if payload.UserID == "" || payload.DisplayName == "" {
		return nil
	}

	return &entities.Claims{
		UserID:      payload.UserID,
		DisplayName: payload.DisplayName,
		Role:        role,
	}
}
