package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shopauth/internal/session/config"
	"shopauth/internal/session/domain/entities"
	"shopauth/pkg/logger"
)

// Константы для логирования.
const (
	ErrorFailedToGetPair   = "failed to get token pair from redis"
	ErrorFailedToSetPair   = "failed to set token pair in redis"
	ErrorFailedToClearPair = "failed to clear token pair in redis"
	ErrorFailedToClose     = "failed to close redis connection"
)

// Ключи хранения пары. Совпадают с ключами исходного клиентского
// хранилища.
const (
	keyAccessToken  = "token"
	keyRefreshToken = "refreshToken"
)

// RedisStore - хранилище пары токенов в redis для сессий, разделяемых
// между процессами. Обе части пары пишутся одной транзакцией.
//
// Внешние изменения не наблюдаются: другой процесс увидит выход из
// системы только при следующем чтении хранилища.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore создает redis-хранилище и проверяет соединение.
func NewRedisStore(ctx context.Context, cfg *config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddressString(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.ConnectTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, prefix: cfg.KeyPrefix}, nil
}

// Get возвращает сохраненную пару либо nil. Частично присутствующая
// пара трактуется как отсутствие пользователя.
func (s *RedisStore) Get(ctx context.Context) (*entities.TokenPair, error) {
	vals, err := s.client.MGet(ctx, s.prefix+keyAccessToken, s.prefix+keyRefreshToken).Result()
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToGetPair, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGetPair, err)
	}

	access, okAccess := vals[0].(string)
	refresh, okRefresh := vals[1].(string)
	if !okAccess || !okRefresh || access == "" || refresh == "" {
		return nil, nil
	}

	return &entities.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Set записывает обе части пары одной транзакцией.
func (s *RedisStore) Set(ctx context.Context, pair *entities.TokenPair) error {
	if !pair.Complete() {
		return ErrIncompletePair
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.prefix+keyAccessToken, pair.AccessToken, 0)
	pipe.Set(ctx, s.prefix+keyRefreshToken, pair.RefreshToken, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToSetPair, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSetPair, err)
	}

	return nil
}

// Clear удаляет обе части пары.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.prefix+keyAccessToken, s.prefix+keyRefreshToken).Err(); err != nil && !errors.Is(err, redis.Nil) {
		logger.Log(ctx).Error(ctx, ErrorFailedToClearPair, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToClearPair, err)
	}
	return nil
}

// Close закрывает соединение с redis.
func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
