package security

import (
	"docs-portal/config"
	"docs-portal/internal/model"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

// CookieStore : хранение сессии в браузере.
// Токен пишется в два cookie: долгоживущий и сессионный (до закрытия вкладки).
// Рядом лежит JSON пользователя и временный email регистрации
type CookieStore struct {
	cfg        config.SessionConfig
	durableTTL time.Duration
}

func NewCookieStore(cfg config.SessionConfig, durableTTL time.Duration) *CookieStore {
	return &CookieStore{cfg: cfg, durableTTL: durableTTL}
}

// Scopes : оба хранилища токена для запроса
func (s *CookieStore) Scopes(r *http.Request) []TokenScope {
	return []TokenScope{
		CookieScope{Request: r, Name: s.cfg.TokenCookie},
		CookieScope{Request: r, Name: s.cfg.SessionCookie},
	}
}

// Save : сохраняет токен в оба хранилища и данные пользователя
func (s *CookieStore) Save(w http.ResponseWriter, token string, user *model.User) {
	if token != "" {
		http.SetCookie(w, s.cookie(s.cfg.TokenCookie, token, s.durableTTL))
		http.SetCookie(w, s.cookie(s.cfg.SessionCookie, token, 0))
	}
	if user != nil {
		if data, err := json.Marshal(user); err == nil {
			http.SetCookie(w, s.cookie(s.cfg.UserCookie, base64.RawURLEncoding.EncodeToString(data), s.durableTTL))
		}
	}
}

// User : сохраненные данные пользователя. Поврежденный cookie дает nil
func (s *CookieStore) User(r *http.Request) *model.User {
	cookie, err := r.Cookie(s.cfg.UserCookie)
	if err != nil {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}

// Clear : удаляет токен из обоих хранилищ, данные пользователя и email регистрации
func (s *CookieStore) Clear(w http.ResponseWriter) {
	for _, name := range []string{s.cfg.TokenCookie, s.cfg.SessionCookie, s.cfg.UserCookie, s.cfg.RegisterEmailCookie} {
		http.SetCookie(w, s.expired(name))
	}
}

// Expire : удаляет только cookie переданных хранилищ
func (s *CookieStore) Expire(w http.ResponseWriter, scopes ...TokenScope) {
	for _, scope := range scopes {
		if cookie, ok := scope.(CookieScope); ok {
			http.SetCookie(w, s.expired(cookie.Name))
		}
	}
}

func (s *CookieStore) SetRegisterEmail(w http.ResponseWriter, email string) {
	http.SetCookie(w, s.cookie(s.cfg.RegisterEmailCookie, email, time.Hour))
}

func (s *CookieStore) RegisterEmail(r *http.Request) string {
	cookie, err := r.Cookie(s.cfg.RegisterEmailCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *CookieStore) ClearRegisterEmail(w http.ResponseWriter) {
	http.SetCookie(w, s.expired(s.cfg.RegisterEmailCookie))
}

func (s *CookieStore) cookie(name, value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
		cookie.Expires = time.Now().Add(ttl)
	}
	return cookie
}

func (s *CookieStore) expired(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
