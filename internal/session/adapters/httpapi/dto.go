// Package httpapi содержит REST-клиент auth-бэкенда: прикрепление
// bearer-токена к исходящим запросам, трансляцию отказов и типизацию
// ответов на сетевой границе.
package httpapi

import "shopauth/internal/session/domain/entities"

// Проводные типы бэкенда. Ответы валидируются при декодировании, чтобы
// некорректный ответ отказывал закрыто, а не протаскивал пустые поля
// дальше по приложению.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// toPair преобразует ответ в доменную пару. Вторым значением сообщает,
// полон ли ответ.
func (r *tokenResponse) toPair() (*entities.TokenPair, bool) {
	pair := &entities.TokenPair{AccessToken: r.Token, RefreshToken: r.RefreshToken}
	return pair, pair.Complete()
}

type refreshRequest struct {
	Token string `json:"token"`
}

type registerRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

type registerResponse struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type checkEmailResponse struct {
	Exists bool `json:"exists"`
}

type userPayload struct {
	ID          string `json:"_id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Avatar      string `json:"avatar"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	IsActive    bool   `json:"isActive"`
}

type profileResponse struct {
	User userPayload `json:"user"`
}

// errorBody - тело отказа бэкенда.
type errorBody struct {
	Message string `json:"message"`
}
