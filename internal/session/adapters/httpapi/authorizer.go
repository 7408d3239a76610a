package httpapi

import (
	"net/http"

	"shopauth/internal/session/ports/store"
)

// authorizer - http.RoundTripper, прикрепляющий текущий bearer-токен к
// каждому исходящему запросу. Синхронен и не имеет побочных эффектов
// кроме заголовка; обработкой 401 не занимается.
//
// Без токена заголовок по умолчанию опускается. Исходный клиент
// отправлял "Bearer " с пустым токеном; это поведение сохранено за
// флагом sendEmpty.
type authorizer struct {
	base      http.RoundTripper
	store     store.TokenStore
	sendEmpty bool
}

func newAuthorizer(base http.RoundTripper, st store.TokenStore, sendEmpty bool) *authorizer {
	return &authorizer{base: base, store: st, sendEmpty: sendEmpty}
}

// RoundTrip реализует http.RoundTripper.
func (a *authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	token := ""
	if pair, err := a.store.Get(req.Context()); err == nil && pair != nil {
		token = pair.AccessToken
	}

	if token == "" && !a.sendEmpty {
		return a.base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return a.base.RoundTrip(clone)
}
