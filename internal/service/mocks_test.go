package service_test

import (
	"context"
	"docs-portal/internal/client"
	"docs-portal/internal/model"
	"github.com/stretchr/testify/mock"
	"io"
	"time"
)

// ===== MOCKS =====

type MockDocumentAPI struct{ mock.Mock }

func (m *MockDocumentAPI) ListDocuments(ctx context.Context, token, search string) ([]model.Document, error) {
	args := m.Called(ctx, token, search)
	if docs, ok := args.Get(0).([]model.Document); ok {
		return docs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentAPI) CreateDocument(ctx context.Context, token string, req client.FinalizeDocumentRequest) (*model.Document, error) {
	args := m.Called(ctx, token, req)
	if doc, ok := args.Get(0).(*model.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentAPI) UpdateDocument(ctx context.Context, token string, update model.DocumentUpdate) error {
	return m.Called(ctx, token, update).Error(0)
}

func (m *MockDocumentAPI) DeleteDocument(ctx context.Context, token, id string) error {
	return m.Called(ctx, token, id).Error(0)
}

func (m *MockDocumentAPI) DownloadURL(ctx context.Context, token, documentID string) (string, error) {
	args := m.Called(ctx, token, documentID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentAPI) RequestUploadGrant(ctx context.Context, token, fileType string) (*model.UploadGrant, error) {
	args := m.Called(ctx, token, fileType)
	if grant, ok := args.Get(0).(*model.UploadGrant); ok {
		return grant, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockStorage struct{ mock.Mock }

func (m *MockStorage) Put(ctx context.Context, signedURL, contentType string, body io.Reader, size int64) error {
	return m.Called(ctx, signedURL, contentType, body, size).Error(0)
}

type MockJournal struct{ mock.Mock }

func (m *MockJournal) Begin(ctx context.Context, record *model.UploadRecord) error {
	args := m.Called(ctx, record)
	record.ID = "journal-1"
	record.Status = model.UploadStatusPending
	return args.Error(0)
}

func (m *MockJournal) MarkStatus(ctx context.Context, id string, status model.UploadStatus, reason string) error {
	return m.Called(ctx, id, status, reason).Error(0)
}

func (m *MockJournal) ListByStatus(ctx context.Context, status model.UploadStatus, limit int) ([]model.UploadRecord, error) {
	args := m.Called(ctx, status, limit)
	if records, ok := args.Get(0).([]model.UploadRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAuthAPI struct{ mock.Mock }

func (m *MockAuthAPI) Login(ctx context.Context, email, password string) (*client.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if res, ok := args.Get(0).(*client.AuthResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, name, email, password, company string) (*client.AuthResult, error) {
	args := m.Called(ctx, name, email, password, company)
	if res, ok := args.Get(0).(*client.AuthResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthAPI) VerifyCode(ctx context.Context, email, code string) (*client.AuthResult, error) {
	args := m.Called(ctx, email, code)
	if res, ok := args.Get(0).(*client.AuthResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthAPI) UpdateRole(ctx context.Context, token, userID string, role model.Role, email string) (*model.User, error) {
	args := m.Called(ctx, token, userID, role, email)
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

func adminSession() *model.Session {
	return &model.Session{
		Token: "token-admin",
		User:  &model.User{ID: "admin-1", Name: "Admin", Email: "admin@example.com", Role: model.RoleAdmin, IsVerified: true},
	}
}
