package repository

import (
	"context"
	"docs-portal/config"
	"docs-portal/internal/model"
	"docs-portal/internal/util"
	"fmt"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"time"
)

// UploadRepository : журнал загрузок в Postgres.
// Позволяет найти файлы, записанные в хранилище, для которых API так и не сохранило метаданные
type UploadRepository struct {
	*config.Database
}

func NewUploadRepository(database *config.Database) *UploadRepository {
	return &UploadRepository{database}
}

// Begin : сохраняет новую запись в статусе PENDING
func (r *UploadRepository) Begin(ctx context.Context, record *model.UploadRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	record.Status = model.UploadStatusPending
	record.CreatedAt = now
	record.UpdatedAt = now

	query := `
		INSERT INTO upload_journal (id, document_id, storage_key, user_id, file_name, file_size, file_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		record.ID,
		record.DocumentID,
		record.StorageKey,
		record.UserID,
		record.FileName,
		record.FileSize,
		record.FileType,
		record.Status,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return util.LogError("[UploadRepository] ошибка вставки записи журнала", err)
	}

	return nil
}

// MarkStatus : меняет статус записи, reason сохраняется как текст ошибки
func (r *UploadRepository) MarkStatus(ctx context.Context, id string, status model.UploadStatus, reason string) error {
	query := `UPDATE upload_journal SET status = $1, error = $2, updated_at = NOW() WHERE id = $3`

	result, err := r.DB.ExecContext(ctx, query, status, reason, id)
	if err != nil {
		return util.LogError("[UploadRepository] не удалось обновить запись журнала", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UploadRepository] не удалось проверить, обновлена ли запись", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[UploadRepository] запись журнала %s не найдена", id)
	}

	return nil
}

// ListByStatus : последние записи с указанным статусом
func (r *UploadRepository) ListByStatus(ctx context.Context, status model.UploadStatus, limit int) ([]model.UploadRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, document_id, storage_key, user_id, file_name, file_size, file_type, status, error, created_at, updated_at
		FROM upload_journal
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var records []model.UploadRecord
	if err := sqlx.SelectContext(ctx, r.DB, &records, query, status, limit); err != nil {
		return nil, util.LogError("[UploadRepository] ошибка получения записей журнала", err)
	}

	return records, nil
}
