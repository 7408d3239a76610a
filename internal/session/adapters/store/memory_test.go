package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopauth/internal/session/adapters/store"
	"shopauth/internal/session/domain/entities"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	t.Run("empty store returns nil", func(t *testing.T) {
		pair, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, pair)
	})

	t.Run("set then get returns the same pair", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, &entities.TokenPair{AccessToken: "tkn1", RefreshToken: "rtkn1"}))

		pair, err := s.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, pair)
		assert.Equal(t, "tkn1", pair.AccessToken)
		assert.Equal(t, "rtkn1", pair.RefreshToken)
	})

	t.Run("returned pair is a copy", func(t *testing.T) {
		pair, err := s.Get(ctx)
		require.NoError(t, err)
		pair.AccessToken = "mutated"

		again, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tkn1", again.AccessToken)
	})

	t.Run("incomplete pair is rejected", func(t *testing.T) {
		err := s.Set(ctx, &entities.TokenPair{AccessToken: "only-access"})
		require.ErrorIs(t, err, store.ErrIncompletePair)

		pair, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tkn1", pair.AccessToken, "failed write must not change the stored pair")
	})

	t.Run("clear removes the pair", func(t *testing.T) {
		require.NoError(t, s.Clear(ctx))

		pair, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, pair)
	})
}
