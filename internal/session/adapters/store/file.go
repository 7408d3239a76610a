package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/crypto/nacl/secretbox"

	"shopauth/internal/session/config"
	"shopauth/internal/session/domain/entities"
	"shopauth/pkg/logger"
)

// Константы для логирования.
const (
	ErrorFailedToReadFile   = "failed to read token file"
	ErrorFailedToWriteFile  = "failed to write token file"
	ErrorFailedToRemoveFile = "failed to remove token file"
	ErrorCorruptTokenFile   = "corrupt token file, treating as empty"
	ErrorWatcherFailed      = "token file watcher failed"

	LogExternalChange = "token file changed externally"
)

// Ошибки файлового хранилища.
var (
	ErrEmptyPath = errors.New("token file path is empty")
)

const (
	fileMode = os.FileMode(0o600)
	dirMode  = os.FileMode(0o700)

	nonceSize = 24
)

// FileStore - файловое хранилище пары токенов. Пара хранится одним JSON
// документом с ключами token и refreshToken; запись идет во временный
// файл с последующим переименованием, поэтому частичная пара не
// наблюдаема даже при сбое посреди записи. При наличии парольной фразы
// содержимое шифруется secretbox.
type FileStore struct {
	path string
	key  *[32]byte
}

// NewFileStore создает файловое хранилище по конфигурации.
func NewFileStore(cfg *config.StorageConfig) (*FileStore, error) {
	if cfg.Path == "" {
		return nil, ErrEmptyPath
	}

	s := &FileStore{path: cfg.Path}
	if cfg.EncryptionKey != "" {
		key := sha256.Sum256([]byte(cfg.EncryptionKey))
		s.key = &key
	}
	return s, nil
}

// Get возвращает сохраненную пару либо nil. Поврежденный или частичный
// файл трактуется как отсутствие пользователя.
func (s *FileStore) Get(ctx context.Context) (*entities.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("path", s.path))

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		log.Error(ctx, ErrorFailedToReadFile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToReadFile, err)
	}

	if s.key != nil {
		data, err = s.open(data)
		if err != nil {
			log.Warn(ctx, ErrorCorruptTokenFile, zap.Error(err))
			return nil, nil
		}
	}

	var pair entities.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		log.Warn(ctx, ErrorCorruptTokenFile, zap.Error(err))
		return nil, nil
	}
	if !pair.Complete() {
		log.Warn(ctx, ErrorCorruptTokenFile)
		return nil, nil
	}

	return &pair, nil
}

// Set атомарно записывает пару целиком.
func (s *FileStore) Set(ctx context.Context, pair *entities.TokenPair) error {
	if !pair.Complete() {
		return ErrIncompletePair
	}

	log := logger.Log(ctx).With(zap.String("path", s.path))

	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToWriteFile, err)
	}

	if s.key != nil {
		data, err = s.seal(data)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrorFailedToWriteFile, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		log.Error(ctx, ErrorFailedToWriteFile, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToWriteFile, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, fileMode); err != nil {
		log.Error(ctx, ErrorFailedToWriteFile, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToWriteFile, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		log.Error(ctx, ErrorFailedToWriteFile, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToWriteFile, err)
	}

	return nil
}

// Clear удаляет файл пары токенов.
func (s *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		logger.Log(ctx).Error(ctx, ErrorFailedToRemoveFile, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRemoveFile, err)
	}
	return nil
}

// Watch сообщает о внешних изменениях файла пары токенов. Поскольку Set
// переименовывает временный файл, наблюдается каталог, а события
// фильтруются по имени файла. Канал закрывается при отмене контекста.
func (s *FileStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("creating watch directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	events := make(chan struct{}, 1)
	base := filepath.Base(s.path)
	log := logger.Log(ctx).With(zap.String("path", s.path))

	go func() {
		defer close(events)
		defer func() { _ = watcher.Close() }()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if !event.Has(fsnotify.Create | fsnotify.Write | fsnotify.Rename | fsnotify.Remove) {
					continue
				}
				log.Debug(ctx, LogExternalChange, zap.String("op", event.Op.String()))
				select {
				case events <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn(ctx, ErrorWatcherFailed, zap.Error(err))
			}
		}
	}()

	return events, nil
}

// seal шифрует содержимое файла: nonce идет префиксом шифртекста.
func (s *FileStore) seal(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, s.key), nil
}

// open расшифровывает содержимое файла.
func (s *FileStore) open(data []byte) ([]byte, error) {
	if len(data) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], data[:nonceSize])

	plaintext, ok := secretbox.Open(nil, data[nonceSize:], &nonce, s.key)
	if !ok {
		return nil, errors.New("decryption failed")
	}
	return plaintext, nil
}
