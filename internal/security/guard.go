package security

import (
	"context"
	"docs-portal/config"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/model"
	"docs-portal/internal/ports"
	"errors"
	"log"
	"time"
)

// Requirement : что нужно странице от сессии
type Requirement struct {
	// RequireVerified : email пользователя должен быть подтвержден
	RequireVerified bool
	// AllowGuest : страница доступна роли guest
	AllowGuest bool
	// Roles : допустимые роли, пустой список означает любую роль кроме guest
	Roles []model.Role
}

var (
	RequireSignedIn  = Requirement{RequireVerified: true}
	RequireAdmin     = Requirement{RequireVerified: true, Roles: []model.Role{model.RoleAdmin}}
	GuestPage        = Requirement{RequireVerified: true, AllowGuest: true}
	VerificationPage = Requirement{AllowGuest: true}
)

// Decision : результат проверки. Если Allowed == false, Redirect указывает, куда отправить пользователя
type Decision struct {
	Allowed  bool
	Redirect string
	Reason   error
}

// Pages : страницы, на которые перенаправляет guard
type Pages struct {
	Entry     string
	Verify    string
	Guest     string
	Dashboard string
}

func PagesFromConfig(cfg *config.PagesConfig) Pages {
	return Pages{
		Entry:     cfg.Entry,
		Verify:    cfg.Verify,
		Guest:     cfg.Guest,
		Dashboard: cfg.Dashboard,
	}
}

// Guard : единая проверка сессии для всех страниц и действий
type Guard struct {
	verifier ports.ProfileVerifier
	cache    ports.ProfileCache
	cacheTTL time.Duration
	pages    Pages
	now      func() time.Time
}

func NewGuard(verifier ports.ProfileVerifier, cache ports.ProfileCache, cacheTTL time.Duration, pages Pages) *Guard {
	return &Guard{
		verifier: verifier,
		cache:    cache,
		cacheTTL: cacheTTL,
		pages:    pages,
		now:      time.Now,
	}
}

func (g *Guard) Pages() Pages {
	return g.pages
}

// Authenticate : проверяет токены хранилищ по порядку, сессию дает первый принятый.
// Любая неудача (нет токена, мусор вместо токена, просроченный токен, ответ API не 2xx,
// сетевая ошибка) дает ErrUnauthenticated, причина только логируется
func (g *Guard) Authenticate(ctx context.Context, scopes ...TokenScope) (*model.Session, error) {
	for _, token := range Tokens(scopes...) {
		if user := g.verify(ctx, token); user != nil {
			return &model.Session{Token: token, User: user}, nil
		}
	}
	return nil, apperrors.ErrUnauthenticated
}

// verify : профиль владельца токена или nil
func (g *Guard) verify(ctx context.Context, token string) *model.User {
	claims, err := DecodeToken(token)
	if err != nil {
		log.Printf("[Guard] токен не удалось разобрать: %v", err)
		return nil
	}
	if claims.Expired(g.now()) {
		log.Printf("[Guard] токен просрочен")
		return nil
	}

	if g.cache != nil {
		user, err := g.cache.GetProfile(ctx, token)
		if err != nil {
			log.Printf("[Guard] ошибка кэша профилей: %v", err)
		}
		if user != nil {
			return user
		}
	}

	user, err := g.verifier.Profile(ctx, token)
	if err != nil || user == nil {
		log.Printf("[Guard] токен отклонен API: %v", err)
		return nil
	}

	if g.cache != nil {
		if err := g.cache.SetProfile(ctx, token, user, g.cacheTTL); err != nil {
			log.Printf("[Guard] ошибка кэширования профиля: %v", err)
		}
	}
	return user
}

// Evaluate : проверки строго по порядку: вход выполнен, email подтвержден, роль
func (g *Guard) Evaluate(session *model.Session, req Requirement) Decision {
	if session == nil || session.User == nil {
		return Decision{Redirect: g.pages.Entry, Reason: apperrors.ErrUnauthenticated}
	}

	user := session.User

	if req.RequireVerified && user.IsVerified == false {
		return Decision{Redirect: g.pages.Verify, Reason: apperrors.ErrEmailNotVerified}
	}

	if user.Role == model.RoleGuest && req.AllowGuest == false {
		return Decision{Redirect: g.pages.Guest, Reason: apperrors.ErrForbidden}
	}

	if len(req.Roles) > 0 && hasRole(req.Roles, user.Role) == false {
		return Decision{Redirect: g.pages.Dashboard, Reason: apperrors.ErrForbidden}
	}

	return Decision{Allowed: true}
}

// Check : Authenticate и Evaluate одним вызовом
func (g *Guard) Check(ctx context.Context, req Requirement, scopes ...TokenScope) (*model.Session, Decision) {
	session, err := g.Authenticate(ctx, scopes...)
	if err != nil && errors.Is(err, apperrors.ErrAuth) == false {
		log.Printf("[Guard] неожиданная ошибка проверки сессии: %v", err)
	}
	return session, g.Evaluate(session, req)
}

func hasRole(roles []model.Role, role model.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
