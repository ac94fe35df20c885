package security

import (
	"docs-portal/internal/apperrors"
	"docs-portal/internal/model"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"time"
)

// TokenClaims : полезная нагрузка токена, выданного API
type TokenClaims struct {
	ID    string     `json:"id"`
	Email string     `json:"email"`
	Role  model.Role `json:"rol"`
	jwt.RegisteredClaims
}

// DecodeToken : разбирает токен без проверки подписи.
// Подпись проверяет только API, здесь токен читается, чтобы отсеять мусор и просроченные токены
// без сетевого запроса. Некорректный токен дает ErrMalformedToken, а не панику
func DecodeToken(token string) (*TokenClaims, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrMalformedToken, err)
	}

	return claims, nil
}

// Expired : true, если в токене есть exp и он уже наступил
func (c *TokenClaims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(c.ExpiresAt.Time)
}
