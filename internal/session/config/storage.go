package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Бэкенды хранилища токенов.
const (
	StorageBackendMemory = "memory"
	StorageBackendFile   = "file"
	StorageBackendRedis  = "redis"
)

// StorageConfig представляет конфигурацию хранилища токенов.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"SESSION_STORAGE_BACKEND" env-default:"file"`
	// Path - путь к файлу пары токенов для файлового бэкенда.
	Path string `yaml:"path" env:"SESSION_STORAGE_PATH"`
	// EncryptionKey - парольная фраза шифрования файла. Пустая строка
	// отключает шифрование.
	EncryptionKey string `yaml:"encryption_key" env:"SESSION_STORAGE_KEY"`
	// Watch включает наблюдение за внешними изменениями файла, чтобы
	// другой процесс с тем же хранилищем увидел выход из системы.
	Watch bool        `yaml:"watch" env:"SESSION_STORAGE_WATCH" env-default:"true"`
	Redis RedisConfig `yaml:"redis"`
}

// ResolvePath возвращает путь к файлу токенов. Пустой путь заменяется
// файлом в пользовательском каталоге конфигурации.
func (c *StorageConfig) ResolvePath() (string, error) {
	if c.Path != "" {
		return c.Path, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(dir, "shopauth", "tokens.json"), nil
}

// RedisConfig представляет конфигурацию redis-бэкенда хранилища.
type RedisConfig struct {
	Host           string        `yaml:"host" env:"SESSION_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"SESSION_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"SESSION_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"SESSION_REDIS_DB" env-default:"0"`
	KeyPrefix      string        `yaml:"key_prefix" env:"SESSION_REDIS_KEY_PREFIX" env-default:"session:"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"SESSION_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"SESSION_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"SESSION_REDIS_WRITE_TIMEOUT" env-default:"3s"`
}

// GetAddressString возвращает адрес redis-сервера.
func (c *RedisConfig) GetAddressString() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
