package security

import (
	"context"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/model"
	"docs-portal/internal/model/requestresponse"
	"docs-portal/internal/util"
	"errors"
	"net/http"
	"strings"
)

type contextKey string

const (
	SessionContextKey contextKey = "session"
)

// Middleware : проверка guard перед обработчиком.
// Страницы получают редирект 302, маршруты /api получают JSON ошибку с адресом редиректа
func (g *Guard) Middleware(store *CookieStore, req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scopes := store.Scopes(r)
			session, decision := g.Check(r.Context(), req, scopes...)
			if stale := StaleScopes(session, scopes...); len(stale) > 0 {
				if session == nil {
					store.Clear(w)
				} else {
					store.Expire(w, stale...)
				}
			}

			if decision.Allowed == false {
				if isAPIRequest(r) {
					util.WriteError(w, requestresponse.ErrorDetail{
						Code:     util.StatusFromError(decision.Reason),
						Text:     util.UserMessage(decision.Reason),
						Redirect: decision.Redirect,
					})
					return
				}

				http.Redirect(w, r, decision.Redirect, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// Optional : кладет сессию в контекст, если она есть, но никуда не перенаправляет
func (g *Guard) Optional(store *CookieStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session, err := g.Authenticate(r.Context(), store.Scopes(r)...); err == nil {
				r = r.WithContext(WithSession(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, session)
}

func SessionFromContext(ctx context.Context) (*model.Session, error) {
	session, ok := ctx.Value(SessionContextKey).(*model.Session)
	if ok == false || session == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return session, nil
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// IsAuthError : ошибка требует выхода и возврата на страницу входа
func IsAuthError(err error) bool {
	return errors.Is(err, apperrors.ErrAuth) && errors.Is(err, apperrors.ErrForbidden) == false
}
