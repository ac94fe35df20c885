package service

import (
	"context"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/model"
	"docs-portal/internal/ports"
	"docs-portal/internal/util"
	"strings"
	"time"
	"unicode/utf8"
)

type DocumentService struct {
	api            ports.DocumentAPI
	minQueryLength int
	debounce       time.Duration
}

func NewDocumentService(api ports.DocumentAPI, minQueryLength int, debounce time.Duration) *DocumentService {
	return &DocumentService{
		api:            api,
		minQueryLength: minQueryLength,
		debounce:       debounce,
	}
}

// List : пустой запрос возвращает все документы, слишком короткий отклоняется без запроса в сеть
func (s *DocumentService) List(ctx context.Context, session *model.Session, query string) ([]model.Document, error) {
	if session == nil || session.Token == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	query = strings.TrimSpace(query)
	if query != "" && utf8.RuneCountInString(query) < s.minQueryLength {
		return nil, apperrors.ErrQueryTooShort
	}

	docs, err := s.api.ListDocuments(ctx, session.Token, query)
	if err != nil {
		return nil, util.LogError("[DocumentService] ошибка получения списка документов", err)
	}
	return docs, nil
}

func (s *DocumentService) Update(ctx context.Context, session *model.Session, update model.DocumentUpdate) error {
	if session == nil || session.Token == "" {
		return apperrors.ErrUnauthenticated
	}
	if strings.TrimSpace(update.ID) == "" {
		return apperrors.MissingField("id")
	}
	if update.Type != nil && update.Type.Valid() == false {
		return apperrors.ErrInvalidDocumentType
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return apperrors.MissingField("name")
	}

	if err := s.api.UpdateDocument(ctx, session.Token, update); err != nil {
		return util.LogError("[DocumentService] ошибка обновления документа", err)
	}
	return nil
}

func (s *DocumentService) Delete(ctx context.Context, session *model.Session, id string) error {
	if session == nil || session.Token == "" {
		return apperrors.ErrUnauthenticated
	}
	if strings.TrimSpace(id) == "" {
		return apperrors.MissingField("id")
	}

	if err := s.api.DeleteDocument(ctx, session.Token, id); err != nil {
		return util.LogError("[DocumentService] ошибка удаления документа", err)
	}
	return nil
}

// DownloadURL : короткоживущая ссылка на чтение файла
func (s *DocumentService) DownloadURL(ctx context.Context, session *model.Session, id string) (string, error) {
	if session == nil || session.Token == "" {
		return "", apperrors.ErrUnauthenticated
	}
	if strings.TrimSpace(id) == "" {
		return "", apperrors.MissingField("id")
	}

	signedURL, err := s.api.DownloadURL(ctx, session.Token, id)
	if err != nil {
		return "", util.LogError("[DocumentService] ошибка получения ссылки на скачивание", err)
	}
	return signedURL, nil
}

// NewSearch : debouncer поиска, привязанный к сессии
func (s *DocumentService) NewSearch(ctx context.Context, session *model.Session, deliver func(SearchResult), opts ...DebouncerOption) *SearchDebouncer {
	search := func(ctx context.Context, query string) ([]model.Document, error) {
		return s.List(ctx, session, query)
	}
	return NewSearchDebouncer(ctx, s.debounce, s.minQueryLength, search, deliver, opts...)
}
