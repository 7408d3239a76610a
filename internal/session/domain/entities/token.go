// Package entities содержит доменные сущности клиентской сессии.
package entities

// TokenPair - пара токенов, выданная бэкендом при входе или обновлении.
// Access-токен - самодостаточный набор claims в форме JWT, refresh-токен -
// непрозрачная строка. Долговременной копией владеет исключительно
// хранилище токенов; остальные компоненты получают копию на время
// одной операции.
type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Complete сообщает, что обе части пары присутствуют.
// Частичная пара никогда не сохраняется.
func (p *TokenPair) Complete() bool {
	return p != nil && p.AccessToken != "" && p.RefreshToken != ""
}
