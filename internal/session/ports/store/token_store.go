// Package store определяет контракт хранилища токенов.
package store

import (
	"context"

	"shopauth/internal/session/domain/entities"
)

// TokenStore - долговременное хранилище текущей пары токенов,
// переживающее перезапуск приложения. Единственный владелец
// долговременной копии пары.
//
// Set атомарен с точки зрения вызывающего: обе части пары записываются
// вместе либо не записывается ничего. Отсутствующая пара - это (nil, nil),
// не ошибка.
type TokenStore interface {
	Get(ctx context.Context) (*entities.TokenPair, error)
	Set(ctx context.Context, pair *entities.TokenPair) error
	Clear(ctx context.Context) error
}

// Watchable - хранилище, способное сообщать о внешних изменениях
// (другой процесс перезаписал или удалил пару). Канал закрывается
// при отмене контекста.
type Watchable interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}
