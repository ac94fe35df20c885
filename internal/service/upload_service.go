package service

import (
	"context"
	"docs-portal/config"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/client"
	"docs-portal/internal/model"
	"docs-portal/internal/ports"
	"docs-portal/internal/util"
	"fmt"
	"log"
	"strings"
)

// UploadService : загрузка документа в три шага.
// Получить pre-signed URL, записать файл напрямую в хранилище, сохранить метаданные в API.
// Метаданные сохраняются только после успешной записи файла
type UploadService struct {
	api          ports.DocumentAPI
	storage      ports.ObjectStorage
	journal      ports.UploadJournal
	maxSize      int64
	allowedTypes map[string]struct{}
}

func NewUploadService(api ports.DocumentAPI, storage ports.ObjectStorage, journal ports.UploadJournal, cfg config.UploadConfig) *UploadService {
	maxSize := cfg.MaxSizeBytes
	if maxSize <= 0 {
		maxSize = config.DefaultMaxUploadBytes
	}

	allowed := cfg.AllowedTypes
	if len(allowed) == 0 {
		allowed = config.DefaultAllowedTypes
	}
	allowedTypes := make(map[string]struct{}, len(allowed))
	for _, t := range allowed {
		allowedTypes[t] = struct{}{}
	}

	return &UploadService{
		api:          api,
		storage:      storage,
		journal:      journal,
		maxSize:      maxSize,
		allowedTypes: allowedTypes,
	}
}

// SuggestName : "<тип> <марка> <модель>", если имя пустое, а марка, модель и тип заполнены.
// Заполненное имя никогда не перезаписывается
func SuggestName(meta model.DocumentMetadata) model.DocumentMetadata {
	if strings.TrimSpace(meta.Name) != "" {
		return meta
	}

	brand := strings.TrimSpace(meta.Brand)
	deviceModel := strings.TrimSpace(meta.Model)
	if brand == "" || deviceModel == "" || meta.Type == "" {
		return meta
	}

	meta.Name = fmt.Sprintf("%s %s %s", meta.Type.Label(), brand, deviceModel)
	return meta
}

// ValidateFile : проверка типа и размера без обращения к сети
func (s *UploadService) ValidateFile(file model.FileInput) error {
	contentType := file.ContentType
	if contentType == "" {
		contentType = util.ContentTypeByExtension(file.Name)
	}

	if _, ok := s.allowedTypes[contentType]; ok == false {
		return apperrors.ErrInvalidFileType
	}
	if file.Size > s.maxSize {
		return apperrors.ErrFileTooLarge
	}
	if file.Size <= 0 {
		return apperrors.ErrEmptyFile
	}
	return nil
}

// ValidateMetadata : обязательные поля и тип документа
func ValidateMetadata(meta model.DocumentMetadata) error {
	required := []struct {
		name  string
		value string
	}{
		{"brand", meta.Brand},
		{"model", meta.Model},
		{"name", meta.Name},
		{"type", string(meta.Type)},
		{"category", meta.Category},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return apperrors.MissingField(field.name)
		}
	}

	if meta.Type.Valid() == false {
		return apperrors.ErrInvalidDocumentType
	}
	return nil
}

// Upload : загружает файл и сохраняет документ.
// Ошибки журнала логируются и на результат загрузки не влияют
func (s *UploadService) Upload(ctx context.Context, session *model.Session, file model.FileInput, meta model.DocumentMetadata) (*model.Document, error) {
	if session == nil || session.Token == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	meta = SuggestName(meta)

	if file.ContentType == "" {
		file.ContentType = util.ContentTypeByExtension(file.Name)
	}
	if err := s.ValidateFile(file); err != nil {
		return nil, err
	}
	if err := ValidateMetadata(meta); err != nil {
		return nil, err
	}

	grant, err := s.api.RequestUploadGrant(ctx, session.Token, file.ContentType)
	if err != nil {
		return nil, util.LogError("[UploadService] не удалось получить URL для загрузки", err)
	}

	record := &model.UploadRecord{
		DocumentID: grant.DocumentID,
		StorageKey: grant.Key,
		UserID:     session.UserID(),
		FileName:   file.Name,
		FileSize:   file.Size,
		FileType:   file.ContentType,
	}
	if err := s.journal.Begin(ctx, record); err != nil {
		log.Printf("[UploadService] ошибка записи в журнал загрузок: %v", err)
	}

	if err := s.storage.Put(ctx, grant.SignedURL, file.ContentType, file.Body, file.Size); err != nil {
		s.mark(ctx, record, model.UploadStatusFailed, err)
		return nil, util.LogError("[UploadService] ошибка записи файла в хранилище", err)
	}

	document, err := s.api.CreateDocument(ctx, session.Token, client.FinalizeDocumentRequest{
		DocumentID:  grant.DocumentID,
		Name:        strings.TrimSpace(meta.Name),
		Type:        meta.Type,
		Category:    meta.Category,
		Brand:       strings.TrimSpace(meta.Brand),
		Model:       strings.TrimSpace(meta.Model),
		Description: meta.Description,
		Keywords:    keywordsOrEmpty(meta.Keywords),
		FileURL:     grant.PublicURL,
		FileName:    file.Name,
		FileSize:    file.Size,
		FileType:    file.ContentType,
	})
	if err != nil {
		s.mark(ctx, record, model.UploadStatusStored, err)
		return nil, util.LogError("[UploadService] файл записан, но документ не сохранен", err)
	}

	s.mark(ctx, record, model.UploadStatusCompleted, nil)
	log.Printf("[UploadService] документ %s (%s) загружен", document.Name, grant.DocumentID)

	return document, nil
}

// Orphans : записи журнала, у которых файл в хранилище есть, а документа нет
func (s *UploadService) Orphans(ctx context.Context, limit int) ([]model.UploadRecord, error) {
	records, err := s.journal.ListByStatus(ctx, model.UploadStatusStored, limit)
	if err != nil {
		return nil, util.LogError("[UploadService] ошибка чтения журнала загрузок", err)
	}
	return records, nil
}

func (s *UploadService) mark(ctx context.Context, record *model.UploadRecord, status model.UploadStatus, cause error) {
	if record.ID == "" {
		return
	}

	reason := ""
	if cause != nil {
		reason = cause.Error()
	}
	if err := s.journal.MarkStatus(ctx, record.ID, status, reason); err != nil {
		log.Printf("[UploadService] ошибка обновления журнала загрузок (%s): %v", status, err)
	}
}

func keywordsOrEmpty(keywords []string) []string {
	if keywords == nil {
		return []string{}
	}
	return keywords
}
