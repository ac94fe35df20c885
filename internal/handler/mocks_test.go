package handler_test

import (
	"context"
	"docs-portal/config"
	"docs-portal/internal/client"
	"docs-portal/internal/model"
	"docs-portal/internal/model/requestresponse"
	"docs-portal/internal/security"
	"github.com/stretchr/testify/mock"
	"io"
	"net/http"
	"time"
)

type MockAuthenticationService struct{ mock.Mock }

func (m *MockAuthenticationService) Login(ctx context.Context, req requestresponse.LoginRequest) (*client.AuthResult, error) {
	args := m.Called(ctx, req)
	if result, ok := args.Get(0).(*client.AuthResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticationService) Register(ctx context.Context, req requestresponse.RegisterRequest) (*client.AuthResult, error) {
	args := m.Called(ctx, req)
	if result, ok := args.Get(0).(*client.AuthResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticationService) Verify(ctx context.Context, email, code string) (*client.AuthResult, error) {
	args := m.Called(ctx, email, code)
	if result, ok := args.Get(0).(*client.AuthResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticationService) Logout(ctx context.Context, token string) {
	m.Called(ctx, token)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) UpdateRole(ctx context.Context, session *model.Session, email, role string) (*model.User, error) {
	args := m.Called(ctx, session, email, role)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDocumentService struct{ mock.Mock }

func (m *MockDocumentService) List(ctx context.Context, session *model.Session, query string) ([]model.Document, error) {
	args := m.Called(ctx, session, query)
	if docs, ok := args.Get(0).([]model.Document); ok {
		return docs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, session *model.Session, update model.DocumentUpdate) error {
	return m.Called(ctx, session, update).Error(0)
}

func (m *MockDocumentService) Delete(ctx context.Context, session *model.Session, id string) error {
	return m.Called(ctx, session, id).Error(0)
}

func (m *MockDocumentService) DownloadURL(ctx context.Context, session *model.Session, id string) (string, error) {
	args := m.Called(ctx, session, id)
	return args.String(0), args.Error(1)
}

// MockUploadService : сохраняет содержимое файла, чтобы тест мог его проверить
type MockUploadService struct {
	mock.Mock
	received []byte
}

func (m *MockUploadService) Upload(ctx context.Context, session *model.Session, file model.FileInput, meta model.DocumentMetadata) (*model.Document, error) {
	if file.Body != nil {
		m.received, _ = io.ReadAll(file.Body)
	}
	file.Body = nil
	args := m.Called(ctx, session, file, meta)
	if doc, ok := args.Get(0).(*model.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUploadService) Orphans(ctx context.Context, limit int) ([]model.UploadRecord, error) {
	args := m.Called(ctx, limit)
	if records, ok := args.Get(0).([]model.UploadRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

var testPages = security.Pages{
	Entry:     "/index",
	Verify:    "/verify-email",
	Guest:     "/guest",
	Dashboard: "/dashboard",
}

func testStore() *security.CookieStore {
	return security.NewCookieStore(config.SessionConfig{
		TokenCookie:         "rpg_auth_token",
		SessionCookie:       "rpg_auth_token_session",
		UserCookie:          "rpg_user_data",
		RegisterEmailCookie: "registerEmail",
	}, time.Hour)
}

func adminSession() *model.Session {
	return &model.Session{
		Token: "token-admin",
		User:  &model.User{ID: "admin-1", Name: "Admin", Email: "admin@example.com", Role: model.RoleAdmin, IsVerified: true},
	}
}

// withSession : подставляет сессию так же, как это делает middleware guard
func withSession(session *model.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(security.WithSession(r.Context(), session)))
		})
	}
}

func cookiesByName(resp *http.Response) map[string]*http.Cookie {
	cookies := map[string]*http.Cookie{}
	for _, cookie := range resp.Cookies() {
		cookies[cookie.Name] = cookie
	}
	return cookies
}
