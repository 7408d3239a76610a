package entities

// Role - роль пользователя, закодированная в access-токене.
type Role string

// Допустимые роли.
const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleGuest    Role = "guest"
)

// ParseRole преобразует строку в роль. Вторым значением сообщает,
// известна ли роль.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleCustomer, RoleGuest:
		return Role(s), true
	default:
		return "", false
	}
}

// Claims - поля, извлеченные из payload-сегмента access-токена.
// Вычисляются по требованию и не кэшируются: токен может быть заменен
// в любой момент. Декодирование не проверяет подпись и служит только
// подсказкой для UI, не границей доверия.
type Claims struct {
	UserID      string
	DisplayName string
	Role        Role
}
