package service_test

import (
	"context"
	"docs-portal/config"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/model"
	"docs-portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

func newTestDocumentService() (*service.DocumentService, *MockDocumentAPI) {
	api := new(MockDocumentAPI)
	return service.NewDocumentService(api, config.DefaultMinQueryLength, config.DefaultDebounce), api
}

func TestList_EmptyQueryListsAll(t *testing.T) {
	svc, api := newTestDocumentService()
	ctx := context.Background()
	docs := []model.Document{{ID: "1"}, {ID: "2"}}

	api.On("ListDocuments", ctx, "token-admin", "").Return(docs, nil)

	got, err := svc.List(ctx, adminSession(), "   ")

	require.NoError(t, err)
	assert.Len(t, got, 2)
	api.AssertExpectations(t)
}

func TestList_SingleCharacterRejectedLocally(t *testing.T) {
	svc, api := newTestDocumentService()

	_, err := svc.List(context.Background(), adminSession(), "s")

	assert.ErrorIs(t, err, apperrors.ErrQueryTooShort)
	api.AssertNotCalled(t, "ListDocuments", mock.Anything, mock.Anything, mock.Anything)
}

func TestList_SearchIsTrimmed(t *testing.T) {
	svc, api := newTestDocumentService()
	ctx := context.Background()

	api.On("ListDocuments", ctx, "token-admin", "sony").Return([]model.Document{{ID: "1", Brand: "Sony"}}, nil)

	got, err := svc.List(ctx, adminSession(), "  sony ")

	require.NoError(t, err)
	assert.Equal(t, "Sony", got[0].Brand)
}

func TestList_NoSession(t *testing.T) {
	svc, _ := newTestDocumentService()

	_, err := svc.List(context.Background(), &model.Session{}, "sony")

	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestList_APIErrorKeepsKind(t *testing.T) {
	svc, api := newTestDocumentService()
	ctx := context.Background()

	api.On("ListDocuments", ctx, "token-admin", "").Return(nil, &apperrors.APIError{Status: 401})

	_, err := svc.List(ctx, adminSession(), "")

	assert.ErrorIs(t, err, apperrors.ErrAuth)
}

func TestUpdate(t *testing.T) {
	t.Run("без id", func(t *testing.T) {
		svc, api := newTestDocumentService()
		err := svc.Update(context.Background(), adminSession(), model.DocumentUpdate{})
		assert.ErrorIs(t, err, apperrors.ErrMissingField)
		api.AssertNotCalled(t, "UpdateDocument", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("неизвестный тип", func(t *testing.T) {
		svc, _ := newTestDocumentService()
		docType := model.DocumentType("otro")
		err := svc.Update(context.Background(), adminSession(), model.DocumentUpdate{ID: "1", Type: &docType})
		assert.ErrorIs(t, err, apperrors.ErrInvalidDocumentType)
	})

	t.Run("успех", func(t *testing.T) {
		svc, api := newTestDocumentService()
		ctx := context.Background()
		name := "Guía Rápida Sony X900"
		update := model.DocumentUpdate{ID: "1", Name: &name}

		api.On("UpdateDocument", ctx, "token-admin", update).Return(nil)

		require.NoError(t, svc.Update(ctx, adminSession(), update))
		api.AssertExpectations(t)
	})
}

func TestDelete(t *testing.T) {
	svc, api := newTestDocumentService()
	ctx := context.Background()

	api.On("DeleteDocument", ctx, "token-admin", "doc-1").Return(nil)

	require.NoError(t, svc.Delete(ctx, adminSession(), "doc-1"))
	assert.ErrorIs(t, svc.Delete(ctx, adminSession(), ""), apperrors.ErrMissingField)
	api.AssertExpectations(t)
}

func TestDownloadURL(t *testing.T) {
	svc, api := newTestDocumentService()
	ctx := context.Background()

	api.On("DownloadURL", ctx, "token-admin", "doc-1").Return("https://storage.example.com/read?sig=1", nil)

	url, err := svc.DownloadURL(ctx, adminSession(), "doc-1")

	require.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/read?sig=1", url)
}
