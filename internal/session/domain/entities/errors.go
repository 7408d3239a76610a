package entities

import "errors"

// Таксономия ошибок клиентской сессии. Сетевые ошибки и ошибки
// декодирования всегда преобразуются на границе шлюза к этим значениям
// и не поднимаются к UI как сырые исключения.
var (
	// ErrValidation - некорректный ввод, отловленный до сетевого вызова.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidCredentials - бэкенд отклонил email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound - пользователь с таким email не зарегистрирован.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken - email уже занят при регистрации.
	ErrEmailTaken = errors.New("email already registered")
	// ErrMalformedResponse - ответ бэкенда не соответствует ожидаемой форме.
	ErrMalformedResponse = errors.New("malformed backend response")
	// ErrNetworkUnavailable - транспортная ошибка, ответа нет вовсе.
	ErrNetworkUnavailable = errors.New("backend unreachable")
	// ErrSessionExpired - бэкенд отверг токен (401).
	ErrSessionExpired = errors.New("session expired")
	// ErrForbidden - операция запрещена для текущей роли (403).
	ErrForbidden = errors.New("operation forbidden")
	// ErrServer - ошибка на стороне сервера (5xx).
	ErrServer = errors.New("server error")
	// ErrUnknown - прочие отказы бэкенда.
	ErrUnknown = errors.New("unknown backend error")
)
