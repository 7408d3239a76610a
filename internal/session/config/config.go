// Package config содержит конфигурацию ядра клиентской сессии.
package config

import (
	"context"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"shopauth/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	LogLoadingConfig    = "loading session configuration"
	LogConfigLoaded     = "session configuration loaded successfully"
	ErrFailedLoadConfig = "failed to load session configuration"
)

// Поведение после успешной регистрации. Исходные фронтенды расходятся:
// один переводит на форму входа, другой сразу выполняет вход, поэтому
// выбор вынесен в конфигурацию.
const (
	PostRegisterManual = "manual"
	PostRegisterAuto   = "auto"
)

// Config представляет полную конфигурацию ядра сессии.
type Config struct {
	API          APIConfig     `yaml:"api"`
	Storage      StorageConfig `yaml:"storage"`
	Logging      LoggingConfig `yaml:"logging"`
	PostRegister string        `yaml:"post_register" env:"SESSION_POST_REGISTER" env-default:"manual"`
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	var cfg Config
	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("base_url", cfg.API.BaseURL),
		zap.Duration("request_timeout", cfg.API.Timeout),
		zap.String("storage_backend", cfg.Storage.Backend),
		zap.String("post_register", cfg.PostRegister),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode))

	return &cfg, nil
}
