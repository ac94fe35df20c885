package security

import (
	"docs-portal/internal/model"
	"net/http"
	"os"
)

// TokenScope : одно из хранилищ токена. Пустая строка означает, что токена нет
type TokenScope interface {
	Token() string
}

// ResolveToken : первый найденный токен, любого хранилища достаточно
func ResolveToken(scopes ...TokenScope) string {
	for _, scope := range scopes {
		if scope == nil {
			continue
		}
		if token := scope.Token(); token != "" {
			return token
		}
	}
	return ""
}

// Tokens : различные непустые токены в порядке хранилищ
func Tokens(scopes ...TokenScope) []string {
	var tokens []string
	seen := map[string]bool{}
	for _, scope := range scopes {
		if scope == nil {
			continue
		}
		token := scope.Token()
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}

// StaleScopes : хранилища, чей токен Authenticate проверил и отклонил.
// Хранилища после того, что дало сессию, не проверялись и не попадают в список
func StaleScopes(session *model.Session, scopes ...TokenScope) []TokenScope {
	var stale []TokenScope
	for _, scope := range scopes {
		if scope == nil {
			continue
		}
		token := scope.Token()
		if token == "" {
			continue
		}
		if session != nil && token == session.Token {
			break
		}
		stale = append(stale, scope)
	}
	return stale
}

// CookieScope : токен в cookie запроса
type CookieScope struct {
	Request *http.Request
	Name    string
}

func (s CookieScope) Token() string {
	cookie, err := s.Request.Cookie(s.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// EnvScope : токен в переменной окружения, живет пока открыт терминал
type EnvScope struct {
	Name string
}

func (s EnvScope) Token() string {
	return os.Getenv(s.Name)
}

// StaticScope : токен, уже известный вызывающему коду
type StaticScope string

func (s StaticScope) Token() string {
	return string(s)
}
