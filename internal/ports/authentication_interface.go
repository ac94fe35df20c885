package ports

import (
	"context"
	"docs-portal/internal/client"
	"docs-portal/internal/model"
)

// AuthAPI : операции внешнего API, связанные с пользователем
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*client.AuthResult, error)
	Register(ctx context.Context, name, email, password, company string) (*client.AuthResult, error)
	VerifyCode(ctx context.Context, email, code string) (*client.AuthResult, error)
	UpdateRole(ctx context.Context, token, userID string, role model.Role, email string) (*model.User, error)
}

// ProfileVerifier : проверка токена через API
type ProfileVerifier interface {
	Profile(ctx context.Context, token string) (*model.User, error)
}
