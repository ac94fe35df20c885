package security_test

import (
	"docs-portal/internal/model"
	"docs-portal/internal/model/requestresponse"
	"docs-portal/internal/security"
	"encoding/json"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newGuardedRouter(guard *security.Guard, store *security.CookieStore, req security.Requirement) *chi.Mux {
	router := chi.NewRouter()
	router.With(guard.Middleware(store, req)).Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		session, err := security.SessionFromContext(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(session.User.DisplayName()))
	})
	router.With(guard.Middleware(store, req)).Get("/api/documents", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return router
}

func TestMiddleware_RedirectsPageWithoutSession(t *testing.T) {
	verifier := new(MockVerifier)
	store := security.NewCookieStore(testSessionConfig, time.Hour)
	router := newGuardedRouter(security.NewGuard(verifier, nil, 0, testPages), store, security.RequireSignedIn)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/index", rec.Header().Get("Location"))
	verifier.AssertNotCalled(t, "Profile", mock.Anything, mock.Anything)
}

func TestMiddleware_APIAnswersJSON(t *testing.T) {
	store := security.NewCookieStore(testSessionConfig, time.Hour)
	router := newGuardedRouter(security.NewGuard(new(MockVerifier), nil, 0, testPages), store, security.RequireAdmin)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp requestresponse.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/index", resp.Error.Redirect)
}

func TestMiddleware_ForbiddenAPI(t *testing.T) {
	verifier := new(MockVerifier)
	store := security.NewCookieStore(testSessionConfig, time.Hour)
	router := newGuardedRouter(security.NewGuard(verifier, nil, 0, testPages), store, security.RequireAdmin)
	token := signedToken(t, model.RoleUser, time.Hour)

	verifier.On("Profile", mock.Anything, token).Return(&model.User{ID: "u", Role: model.RoleUser, IsVerified: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.AddCookie(&http.Cookie{Name: "rpg_auth_token", Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "действительная сессия не очищается")
}

func TestMiddleware_StaleTokenIsCleared(t *testing.T) {
	store := security.NewCookieStore(testSessionConfig, time.Hour)
	router := newGuardedRouter(security.NewGuard(new(MockVerifier), nil, 0, testPages), store, security.RequireSignedIn)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "rpg_auth_token_session", Value: signedToken(t, model.RoleAdmin, -time.Hour)})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)

	cleared := map[string]bool{}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 {
			cleared[cookie.Name] = true
		}
	}
	assert.True(t, cleared["rpg_auth_token"])
	assert.True(t, cleared["rpg_auth_token_session"])
	assert.True(t, cleared["rpg_user_data"])
}

func TestMiddleware_StaleDurableCookieWithValidSessionCookie(t *testing.T) {
	verifier := new(MockVerifier)
	store := security.NewCookieStore(testSessionConfig, time.Hour)
	router := newGuardedRouter(security.NewGuard(verifier, nil, 0, testPages), store, security.RequireSignedIn)
	token := signedToken(t, model.RoleUser, time.Hour)

	verifier.On("Profile", mock.Anything, token).Return(&model.User{ID: "u", Name: "Juan Pérez", Role: model.RoleUser, IsVerified: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "rpg_auth_token", Value: signedToken(t, model.RoleUser, -time.Hour)})
	req.AddCookie(&http.Cookie{Name: "rpg_auth_token_session", Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Juan Pérez", rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "rpg_auth_token", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestMiddleware_AllowsAndExposesSession(t *testing.T) {
	verifier := new(MockVerifier)
	store := security.NewCookieStore(testSessionConfig, time.Hour)
	router := newGuardedRouter(security.NewGuard(verifier, nil, 0, testPages), store, security.RequireSignedIn)
	token := signedToken(t, model.RoleUser, time.Hour)

	verifier.On("Profile", mock.Anything, token).Return(&model.User{ID: "u", Name: "Juan Pérez", Role: model.RoleUser, IsVerified: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "rpg_auth_token_session", Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Juan Pérez", rec.Body.String())
}

func TestMiddleware_UnverifiedRedirectsToVerify(t *testing.T) {
	verifier := new(MockVerifier)
	store := security.NewCookieStore(testSessionConfig, time.Hour)
	router := newGuardedRouter(security.NewGuard(verifier, nil, 0, testPages), store, security.RequireAdmin)
	token := signedToken(t, model.RoleAdmin, time.Hour)

	verifier.On("Profile", mock.Anything, token).Return(&model.User{ID: "u", Role: model.RoleAdmin, IsVerified: false}, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "rpg_auth_token", Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/verify-email", rec.Header().Get("Location"))
}

func TestSessionFromContext_Missing(t *testing.T) {
	_, err := security.SessionFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.Error(t, err)
}
