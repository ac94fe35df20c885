package security_test

import (
	"context"
	"docs-portal/config"
	"docs-portal/internal/model"
	"docs-portal/internal/security"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"testing"
	"time"
)

type MockVerifier struct{ mock.Mock }

func (m *MockVerifier) Profile(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockProfileCache struct{ mock.Mock }

func (m *MockProfileCache) SetProfile(ctx context.Context, token string, user *model.User, ttl time.Duration) error {
	return m.Called(ctx, token, user, ttl).Error(0)
}

func (m *MockProfileCache) GetProfile(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileCache) DeleteProfile(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

var testPages = security.Pages{
	Entry:     "/index",
	Verify:    "/verify-email",
	Guest:     "/guest",
	Dashboard: "/dashboard",
}

var testSessionConfig = config.SessionConfig{
	TokenCookie:         "rpg_auth_token",
	SessionCookie:       "rpg_auth_token_session",
	UserCookie:          "rpg_user_data",
	RegisterEmailCookie: "registerEmail",
}

// signedToken : токен с exp через ttl (отрицательный ttl дает просроченный токен)
func signedToken(t *testing.T, role model.Role, ttl time.Duration) string {
	t.Helper()

	claims := security.TokenClaims{
		ID:    "user-1",
		Email: "tech@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-secret"))
	if err != nil {
		t.Fatalf("не удалось подписать токен: %v", err)
	}
	return token
}
