package ports

import (
	"context"
	"docs-portal/internal/client"
	"docs-portal/internal/model"
)

// DocumentAPI : операции внешнего API с документами
type DocumentAPI interface {
	ListDocuments(ctx context.Context, token, search string) ([]model.Document, error)
	CreateDocument(ctx context.Context, token string, req client.FinalizeDocumentRequest) (*model.Document, error)
	UpdateDocument(ctx context.Context, token string, update model.DocumentUpdate) error
	DeleteDocument(ctx context.Context, token, id string) error
	DownloadURL(ctx context.Context, token, documentID string) (string, error)
	RequestUploadGrant(ctx context.Context, token, fileType string) (*model.UploadGrant, error)
}

// UploadJournal : SQL слой журнала загрузок
type UploadJournal interface {
	Begin(ctx context.Context, record *model.UploadRecord) error
	MarkStatus(ctx context.Context, id string, status model.UploadStatus, reason string) error
	ListByStatus(ctx context.Context, status model.UploadStatus, limit int) ([]model.UploadRecord, error)
}
