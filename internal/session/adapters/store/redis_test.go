package store_test

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopauth/internal/session/adapters/store"
	"shopauth/internal/session/config"
	"shopauth/internal/session/domain/entities"
)

func newRedisStore(t *testing.T) (*store.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	host, portStr, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	s, err := store.NewRedisStore(context.Background(), &config.RedisConfig{
		Host:           host,
		Port:           port,
		KeyPrefix:      "session:",
		ConnectTimeout: time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	return s, mr
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	t.Run("empty store returns nil", func(t *testing.T) {
		pair, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, pair)
	})

	t.Run("set writes both keys", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, &entities.TokenPair{AccessToken: "tkn1", RefreshToken: "rtkn1"}))

		access, err := mr.Get("session:token")
		require.NoError(t, err)
		assert.Equal(t, "tkn1", access)

		refresh, err := mr.Get("session:refreshToken")
		require.NoError(t, err)
		assert.Equal(t, "rtkn1", refresh)
	})

	t.Run("get returns the stored pair", func(t *testing.T) {
		pair, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, &entities.TokenPair{AccessToken: "tkn1", RefreshToken: "rtkn1"}, pair)
	})

	t.Run("partial pair in redis reads as nil", func(t *testing.T) {
		mr.Del("session:refreshToken")

		pair, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, pair)
	})

	t.Run("incomplete pair is rejected", func(t *testing.T) {
		require.ErrorIs(t, s.Set(ctx, &entities.TokenPair{AccessToken: "x"}), store.ErrIncompletePair)
	})

	t.Run("clear removes both keys", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, &entities.TokenPair{AccessToken: "tkn2", RefreshToken: "rtkn2"}))
		require.NoError(t, s.Clear(ctx))

		assert.False(t, mr.Exists("session:token"))
		assert.False(t, mr.Exists("session:refreshToken"))
	})
}
