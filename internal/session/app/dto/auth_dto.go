// Package dto содержит объекты передачи данных клиентской сессии.
package dto

// Credentials - временные данные входа. Никогда не сохраняются дольше
// запроса, который их использует.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest - данные регистрации пользователя.
type RegisterRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// ProfileSummary - сводка профиля, возвращаемая бэкендом после регистрации.
// Регистрация сама по себе не устанавливает сессию.
type ProfileSummary struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
}
