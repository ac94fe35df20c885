package repository

import (
	"context"
	"docs-portal/internal/model"
	"time"
)

// NoopCacheRepository : используется, когда Redis не настроен
type NoopCacheRepository struct{}

func (NoopCacheRepository) SetProfile(context.Context, string, *model.User, time.Duration) error {
	return nil
}

func (NoopCacheRepository) GetProfile(context.Context, string) (*model.User, error) {
	return nil, nil
}

func (NoopCacheRepository) DeleteProfile(context.Context, string) error {
	return nil
}

// NoopUploadJournal : используется, когда Postgres не настроен
type NoopUploadJournal struct{}

func (NoopUploadJournal) Begin(context.Context, *model.UploadRecord) error {
	return nil
}

func (NoopUploadJournal) MarkStatus(context.Context, string, model.UploadStatus, string) error {
	return nil
}

func (NoopUploadJournal) ListByStatus(context.Context, model.UploadStatus, int) ([]model.UploadRecord, error) {
	return []model.UploadRecord{}, nil
}
