package entities

// UserProfile - профиль пользователя, возвращаемый бэкендом
// авторизованному клиенту.
type UserProfile struct {
	ID          string
	DisplayName string
	Email       string
	Role        Role
	Avatar      string
	Phone       string
	DateOfBirth string
	IsActive    bool
}
