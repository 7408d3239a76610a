package config

import "time"

// APIConfig представляет конфигурацию клиента auth-бэкенда.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"SESSION_API_BASE_URL" env-default:"http://localhost:3000/api"`
	Timeout time.Duration `yaml:"timeout" env:"SESSION_API_TIMEOUT" env-default:"10s"`
	// SendEmptyBearer восстанавливает наблюдаемое унаследованное
	// поведение: отправку "Authorization: Bearer " без токена. По
	// умолчанию заголовок опускается, когда токена нет.
	SendEmptyBearer bool `yaml:"send_empty_bearer" env:"SESSION_API_SEND_EMPTY_BEARER" env-default:"false"`
	// EmailCheckDebounce - пауза перед проверкой занятости email.
	// Значения меньше 500ms поднимаются до 500ms.
	EmailCheckDebounce time.Duration `yaml:"email_check_debounce" env:"SESSION_API_EMAIL_CHECK_DEBOUNCE" env-default:"500ms"`
}

const minEmailCheckDebounce = 500 * time.Millisecond

// GetEmailCheckDebounce возвращает паузу проверки email не меньше
// минимальной.
func (c *APIConfig) GetEmailCheckDebounce() time.Duration {
	if c.EmailCheckDebounce < minEmailCheckDebounce {
		return minEmailCheckDebounce
	}
	return c.EmailCheckDebounce
}
