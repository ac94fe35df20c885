package model

import (
	"io"
	"time"
)

// UploadGrant : разрешение на прямую запись в хранилище, выдается API на одну загрузку
type UploadGrant struct {
	SignedURL  string `json:"signedUrl"`
	PublicURL  string `json:"publicUrl"`
	Key        string `json:"key"`
	DocumentID string `json:"documentId"`
}

// UploadStatus : состояние загрузки в журнале
type UploadStatus string

const (
	UploadStatusPending   UploadStatus = "PENDING"
	UploadStatusStored    UploadStatus = "STORED"
	UploadStatusCompleted UploadStatus = "COMPLETED"
	UploadStatusFailed    UploadStatus = "FAILED"
)

// UploadRecord : запись журнала загрузок.
// STORED означает, что файл лежит в хранилище, но метаданные в API не сохранены
type UploadRecord struct {
	ID         string       `db:"id" json:"id"`
	DocumentID string       `db:"document_id" json:"document_id"`
	StorageKey string       `db:"storage_key" json:"storage_key"`
	UserID     string       `db:"user_id" json:"user_id"`
	FileName   string       `db:"file_name" json:"file_name"`
	FileSize   int64        `db:"file_size" json:"file_size"`
	FileType   string       `db:"file_type" json:"file_type"`
	Status     UploadStatus `db:"status" json:"status"`
	Error      string       `db:"error" json:"error,omitempty"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

// FileInput : файл, выбранный пользователем
type FileInput struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}
