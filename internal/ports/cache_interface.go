package ports

import (
	"context"
	"docs-portal/internal/model"
	"time"
)

// ProfileCache : Redis слой для проверенных профилей
type ProfileCache interface {
	SetProfile(ctx context.Context, token string, user *model.User, ttl time.Duration) error
	GetProfile(ctx context.Context, token string) (*model.User, error)
	DeleteProfile(ctx context.Context, token string) error
}
