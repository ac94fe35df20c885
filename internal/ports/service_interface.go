package ports

import (
	"context"
	"docs-portal/internal/client"
	"docs-portal/internal/model"
	"docs-portal/internal/model/requestresponse"
)

type AuthenticationService interface {
	Login(ctx context.Context, req requestresponse.LoginRequest) (*client.AuthResult, error)
	Register(ctx context.Context, req requestresponse.RegisterRequest) (*client.AuthResult, error)
	Verify(ctx context.Context, email, code string) (*client.AuthResult, error)
	Logout(ctx context.Context, token string)
}

type UserService interface {
	UpdateRole(ctx context.Context, session *model.Session, email, role string) (*model.User, error)
}

type DocumentService interface {
	List(ctx context.Context, session *model.Session, query string) ([]model.Document, error)
	Update(ctx context.Context, session *model.Session, update model.DocumentUpdate) error
	Delete(ctx context.Context, session *model.Session, id string) error
	DownloadURL(ctx context.Context, session *model.Session, id string) (string, error)
}

type UploadService interface {
	Upload(ctx context.Context, session *model.Session, file model.FileInput, meta model.DocumentMetadata) (*model.Document, error)
	Orphans(ctx context.Context, limit int) ([]model.UploadRecord, error)
}
