package app

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"shopauth/internal/session/app/dto"
	"shopauth/internal/session/domain/entities"
	"shopauth/internal/session/ports/nav"
)

// MockAuthAPI - мок шлюза аутентификации.
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.ProfileSummary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProfileSummary), args.Error(1)
}

func (m *MockAuthAPI) Login(ctx context.Context, creds *dto.Credentials) (*entities.TokenPair, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TokenPair), args.Error(1)
}

func (m *MockAuthAPI) Refresh(ctx context.Context, refreshToken string) (*entities.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TokenPair), args.Error(1)
}

func (m *MockAuthAPI) CheckEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthAPI) Profile(ctx context.Context) (*entities.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserProfile), args.Error(1)
}

// recordNavigator запоминает запрошенные переходы.
type recordNavigator struct {
	mu     sync.Mutex
	routes []nav.Route
}

func (n *recordNavigator) NavigateTo(_ context.Context, route nav.Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *recordNavigator) visited() []nav.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]nav.Route, len(n.routes))
	copy(out, n.routes)
	return out
}

// recordNotifier запоминает показанные уведомления.
type recordNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordNotifier) Success(_ context.Context, msg string) { n.record(msg) }
func (n *recordNotifier) Info(_ context.Context, msg string)    { n.record(msg) }
func (n *recordNotifier) Error(_ context.Context, msg string)   { n.record(msg) }

func (n *recordNotifier) record(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *recordNotifier) shown() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.messages))
	copy(out, n.messages)
	return out
}

// mintToken выпускает подписанный токен с заданными утверждениями.
func mintToken(t interface{ Fatalf(string, ...any) }, userID, displayName, role string, exp time.Time) string {
	claims := jwt.MapClaims{
		"userId":      userID,
		"displayName": displayName,
		"role":        role,
	}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return raw
}
