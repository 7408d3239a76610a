package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopauth/internal/session/adapters/store"
	"shopauth/internal/session/config"
	"shopauth/internal/session/domain/entities"
)

func newFileStore(t *testing.T, encryptionKey string) (*store.FileStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.json")
	s, err := store.NewFileStore(&config.StorageConfig{Path: path, EncryptionKey: encryptionKey})
	require.NoError(t, err)
	return s, path
}

func TestFileStoreEmptyPath(t *testing.T) {
	_, err := store.NewFileStore(&config.StorageConfig{})
	require.ErrorIs(t, err, store.ErrEmptyPath)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s, path := newFileStore(t, "")

	t.Run("missing file reads as nil", func(t *testing.T) {
		pair, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, pair)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, &entities.TokenPair{AccessToken: "tkn1", RefreshToken: "rtkn1"}))

		pair, err := s.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, pair)
		assert.Equal(t, &entities.TokenPair{AccessToken: "tkn1", RefreshToken: "rtkn1"}, pair)
	})

	t.Run("both keys live in one document", func(t *testing.T) {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"token":"tkn1","refreshToken":"rtkn1"}`, string(data))
	})

	t.Run("no temp file is left behind", func(t *testing.T) {
		_, err := os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("incomplete pair is rejected", func(t *testing.T) {
		err := s.Set(ctx, &entities.TokenPair{RefreshToken: "only-refresh"})
		require.ErrorIs(t, err, store.ErrIncompletePair)
	})

	t.Run("corrupt file reads as nil", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		pair, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, pair)
	})

	t.Run("partial document reads as nil", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`{"token":"tkn1"}`), 0o600))

		pair, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, pair)
	})

	t.Run("clear removes the file", func(t *testing.T) {
		require.NoError(t, s.Clear(ctx))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))

		require.NoError(t, s.Clear(ctx), "clearing an empty store is not an error")
	})
}

func TestFileStoreEncrypted(t *testing.T) {
	ctx := context.Background()
	s, path := newFileStore(t, "correct horse battery staple")

	require.NoError(t, s.Set(ctx, &entities.TokenPair{AccessToken: "tkn1", RefreshToken: "rtkn1"}))

	t.Run("tokens are not stored in the clear", func(t *testing.T) {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "tkn1")
	})

	t.Run("round-trips through encryption", func(t *testing.T) {
		pair, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, &entities.TokenPair{AccessToken: "tkn1", RefreshToken: "rtkn1"}, pair)
	})

	t.Run("wrong key reads as nil", func(t *testing.T) {
		other, err := store.NewFileStore(&config.StorageConfig{Path: path, EncryptionKey: "wrong key"})
		require.NoError(t, err)

		pair, err := other.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, pair)
	})
}

func TestFileStoreWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, path := newFileStore(t, "")

	events, err := s.Watch(ctx)
	require.NoError(t, err)

	// Пишет другой экземпляр, как это делал бы соседний процесс.
	other, err := store.NewFileStore(&config.StorageConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, other.Set(ctx, &entities.TokenPair{AccessToken: "tkn2", RefreshToken: "rtkn2"}))

	select {
	case _, ok := <-events:
		require.True(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change event after an external write")
	}

	cancel()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("expected the event channel to close")
		}
	}
}
