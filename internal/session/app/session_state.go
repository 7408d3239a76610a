// Package app содержит сценарии использования клиентской сессии.
package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"shopauth/internal/session/domain/entities"
	"shopauth/internal/session/ports/store"
	"shopauth/internal/session/token"
	"shopauth/pkg/logger"
)

// Константы для логирования.
const (
	LogSessionSeeded        = "session state seeded from token store"
	LogSessionChanged       = "session state changed"
	LogSessionRederived     = "session state re-derived from token store"
	LogStaleTokenClearError = "failed to clear stale token pair"
)

// subscription хранит подписчика с порядковым номером, чтобы доставка
// шла в порядке подписки.
type subscription struct {
	id int
	fn func(authenticated bool)
}

// SessionState - наблюдаемая ячейка состояния аутентификации. Один
// экземпляр на приложение, создается в корне композиции и передается
// всем потребителям по ссылке.
//
// Инвариант: состояние истинно тогда и только тогда, когда хранилище
// содержит синтаксически корректный access-токен. Мутации разрешены
// только AuthUsecase и инвалидатору транслятора ошибок (setter скрыт в
// пакете); все остальные читают и подписываются.
type SessionState struct {
	store   store.TokenStore
	decoder *token.Decoder

	mu            sync.RWMutex
	authenticated bool
	claims        *entities.Claims
	subs          []subscription
	nextID        int
}

// NewSessionState создает состояние сессии, выводя начальное значение из
// хранилища токенов. Пара с истекшим или нечитаемым access-токеном
// трактуется как отсутствующая и сразу удаляется из хранилища.
func NewSessionState(ctx context.Context, st store.TokenStore, decoder *token.Decoder) *SessionState {
	s := &SessionState{store: st, decoder: decoder}

	var claims *entities.Claims
	if pair, err := st.Get(ctx); err == nil && pair != nil {
		claims = decoder.Decode(pair.AccessToken)
		if claims == nil {
			if clearErr := st.Clear(ctx); clearErr != nil {
				logger.Log(ctx).Warn(ctx, LogStaleTokenClearError, zap.Error(clearErr))
			}
		}
	}
	s.authenticated = claims != nil
	s.claims = claims

	logger.Log(ctx).Info(ctx, LogSessionSeeded, zap.Bool("authenticated", s.authenticated))
	return s
}

// Current возвращает текущее состояние аутентификации.
func (s *SessionState) Current() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Claims возвращает копию последних известных claims либо nil.
func (s *SessionState) Claims() *entities.Claims {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.claims == nil {
		return nil
	}
	claims := *s.claims
	return &claims
}

// Subscribe регистрирует подписчика и синхронно доставляет ему текущее
// значение. Возвращает функцию отписки. Подписчики уведомляются в
// порядке подписки в той же синхронной последовательности, что и запись.
func (s *SessionState) Subscribe(fn func(authenticated bool)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	current := s.authenticated
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// set обновляет состояние и синхронно уведомляет подписчиков. Запись в
// хранилище токенов всегда предшествует вызову set, а уведомление
// завершается до возврата из операции шлюза: зависимые чтения видят
// согласованную пару "хранилище + состояние".
func (s *SessionState) set(ctx context.Context, authenticated bool, claims *entities.Claims) {
	s.mu.Lock()
	changed := s.authenticated != authenticated
	s.authenticated = authenticated
	s.claims = claims
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if changed {
		logger.Log(ctx).Info(ctx, LogSessionChanged, zap.Bool("authenticated", authenticated))
	}

	for _, sub := range subs {
		sub.fn(authenticated)
	}
}

// Rederive повторно выводит состояние из хранилища токенов. Вызывается
// при внешних изменениях хранилища (выход из системы в соседнем
// процессе).
func (s *SessionState) Rederive(ctx context.Context) {
	var claims *entities.Claims
	if pair, err := s.store.Get(ctx); err == nil && pair != nil {
		claims = s.decoder.Decode(pair.AccessToken)
	}

	logger.Log(ctx).Debug(ctx, LogSessionRederived, zap.Bool("authenticated", claims != nil))
	s.set(ctx, claims != nil, claims)
}

// WatchStore подписывает состояние на внешние изменения наблюдаемого
// хранилища. Блокирует до отмены контекста; запускается отдельной
// горутиной в корне композиции.
func (s *SessionState) WatchStore(ctx context.Context, w store.Watchable) error {
	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			s.Rederive(ctx)
		}
	}
}
