package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	navadapter "shopauth/internal/session/adapters/nav"
	"shopauth/internal/session/adapters/notify"
	"shopauth/internal/session/adapters/store"
	"shopauth/internal/session/app"
	"shopauth/internal/session/app/dto"
	"shopauth/internal/session/config"
	"shopauth/internal/session/domain/entities"
	"shopauth/internal/session/observability"
	"shopauth/internal/session/token"
)

// fakeAuthAPI - управляемый шлюз аутентификации для тестов витрины.
type fakeAuthAPI struct {
	pair    *entities.TokenPair
	profile *entities.UserProfile
	exists  bool
	err     error
}

func (f *fakeAuthAPI) Register(context.Context, *dto.RegisterRequest) (*dto.ProfileSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ProfileSummary{DisplayName: "Alice", Email: "alice@example.com"}, nil
}

func (f *fakeAuthAPI) Login(context.Context, *dto.Credentials) (*entities.TokenPair, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pair, nil
}

func (f *fakeAuthAPI) Refresh(context.Context, string) (*entities.TokenPair, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pair, nil
}

func (f *fakeAuthAPI) CheckEmail(context.Context, string) (bool, error) {
	return f.exists, f.err
}

func (f *fakeAuthAPI) Profile(context.Context) (*entities.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func mintToken(t *testing.T, userID, displayName, role string) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":      userID,
		"displayName": displayName,
		"role":        role,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func newTestApp(t *testing.T, api *fakeAuthAPI) (*fiber.App, *app.SessionState) {
	t.Helper()
	ctx := context.Background()

	tokenStore := store.NewMemoryStore()
	decoder := token.NewDecoder()
	state := app.NewSessionState(ctx, tokenStore, decoder)
	notifier := notify.NewChannelNotifier(16)
	navigator := navadapter.NewLogNavigator()

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	authUsecase := app.NewAuthUsecase(api, tokenStore, state, decoder,
		notifier, navigator, metrics, config.PostRegisterManual)
	userUsecase := app.NewUserUsecase(api, state, notifier)
	guard := app.NewRouteGuard(state, navigator)
	checker := app.NewEmailChecker(api, 10*time.Millisecond, metrics)

	fiberApp := fiber.New()
	SetupRouter(fiberApp, Deps{
		Auth:     authUsecase,
		Users:    userUsecase,
		State:    state,
		Guard:    guard,
		Checker:  checker,
		Notifier: notifier,
		Registry: registry,
	})

	return fiberApp, state
}

func TestRouterSession(t *testing.T) {
	fiberApp, _ := newTestApp(t, &fakeAuthAPI{})

	resp, err := fiberApp.Test(httptest.NewRequest(fiber.MethodGet, "/api/auth/session", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["authenticated"])
}

func TestRouterGuardRedirect(t *testing.T) {
	fiberApp, _ := newTestApp(t, &fakeAuthAPI{})

	resp, err := fiberApp.Test(httptest.NewRequest(fiber.MethodGet, "/api/users/profile", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRouterLoginFlow(t *testing.T) {
	raw := mintToken(t, "u-1", "Alice", "customer")
	api := &fakeAuthAPI{
		pair: &entities.TokenPair{AccessToken: raw, RefreshToken: "r"},
		profile: &entities.UserProfile{
			ID:          "u-1",
			DisplayName: "Alice",
			Email:       "alice@example.com",
			Role:        entities.RoleCustomer,
			IsActive:    true,
		},
	}
	fiberApp, state := newTestApp(t, api)

	loginReq := httptest.NewRequest(fiber.MethodPost, "/api/auth/login",
		jsonBody(t, map[string]string{"email": "alice@example.com", "password": "secret"}))
	loginReq.Header.Set("Content-Type", "application/json")

	resp, err := fiberApp.Test(loginReq)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, state.Current())

	var session map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	assert.Equal(t, true, session["authenticated"])
	assert.Equal(t, "u-1", session["userId"])

	// После входа защищенный маршрут открывается.
	profileResp, err := fiberApp.Test(httptest.NewRequest(fiber.MethodGet, "/api/users/profile", nil))
	require.NoError(t, err)
	defer func() { _ = profileResp.Body.Close() }()

	assert.Equal(t, fiber.StatusOK, profileResp.StatusCode)

	var profile map[string]any
	require.NoError(t, json.NewDecoder(profileResp.Body).Decode(&profile))
	assert.Equal(t, "u-1", profile["id"])
	assert.Equal(t, "customer", profile["role"])
}

func TestRouterNotifications(t *testing.T) {
	raw := mintToken(t, "u-1", "Alice", "customer")
	fiberApp, _ := newTestApp(t, &fakeAuthAPI{
		pair: &entities.TokenPair{AccessToken: raw, RefreshToken: "r"},
	})

	loginReq := httptest.NewRequest(fiber.MethodPost, "/api/auth/login",
		jsonBody(t, map[string]string{"email": "alice@example.com", "password": "secret"}))
	loginReq.Header.Set("Content-Type", "application/json")

	resp, err := fiberApp.Test(loginReq)
	require.NoError(t, err)
	_ = resp.Body.Close()

	notifyResp, err := fiberApp.Test(httptest.NewRequest(fiber.MethodGet, "/api/notifications", nil))
	require.NoError(t, err)
	defer func() { _ = notifyResp.Body.Close() }()

	var body struct {
		Notifications []struct {
			Severity string `json:"severity"`
			Message  string `json:"message"`
		} `json:"notifications"`
	}
	require.NoError(t, json.NewDecoder(notifyResp.Body).Decode(&body))
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "success", body.Notifications[0].Severity)
	assert.Equal(t, "You have successfully signed in", body.Notifications[0].Message)

	// Буфер опустошен, повторный запрос пуст.
	again, err := fiberApp.Test(httptest.NewRequest(fiber.MethodGet, "/api/notifications", nil))
	require.NoError(t, err)
	defer func() { _ = again.Body.Close() }()

	var rest struct {
		Notifications []any `json:"notifications"`
	}
	require.NoError(t, json.NewDecoder(again.Body).Decode(&rest))
	assert.Empty(t, rest.Notifications)
}

func TestRouterUnknownRoute(t *testing.T) {
	fiberApp, _ := newTestApp(t, &fakeAuthAPI{})

	resp, err := fiberApp.Test(httptest.NewRequest(fiber.MethodGet, "/api/unknown", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}
