// Package store содержит реализации хранилища токенов.
package store

import (
	"context"
	"errors"
	"sync"

	"shopauth/internal/session/domain/entities"
)

// ErrIncompletePair возвращается при попытке сохранить частичную пару.
// Обе части пары записываются вместе либо не записывается ничего.
var ErrIncompletePair = errors.New("token pair is incomplete")

// MemoryStore - хранилище токенов в памяти процесса. Не переживает
// перезапуск; используется тестами и как явный выбор для эфемерных
// сессий.
type MemoryStore struct {
	mu   sync.RWMutex
	pair *entities.TokenPair
}

// NewMemoryStore создает новое хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get возвращает копию текущей пары либо nil.
func (s *MemoryStore) Get(_ context.Context) (*entities.TokenPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.pair == nil {
		return nil, nil
	}
	pair := *s.pair
	return &pair, nil
}

// Set сохраняет пару целиком.
func (s *MemoryStore) Set(_ context.Context, pair *entities.TokenPair) error {
	if !pair.Complete() {
		return ErrIncompletePair
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *pair
	s.pair = &copied
	return nil
}

// Clear удаляет сохраненную пару.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = nil
	return nil
}
