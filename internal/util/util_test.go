package util_test

import (
	"context"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/util"
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSignedURLUploader_Put(t *testing.T) {
	var (
		gotBody   string
		gotAuth   string
		gotType   string
		gotLength int64
		gotMethod string
		gotQuery  string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotLength = r.ContentLength
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	uploader := util.NewSignedURLUploader(5 * time.Second)
	err := uploader.Put(context.Background(), server.URL+"/docs/key?X-Signature=abc", "application/pdf", strings.NewReader("%PDF-1.4"), 8)

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "%PDF-1.4", gotBody)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, int64(8), gotLength)
	assert.Equal(t, "X-Signature=abc", gotQuery)
}

func TestSignedURLUploader_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("SignatureDoesNotMatch"))
	}))
	defer server.Close()

	uploader := util.NewSignedURLUploaderWithClient(server.Client())
	err := uploader.Put(context.Background(), server.URL, "application/pdf", strings.NewReader("x"), 1)

	assert.ErrorIs(t, err, apperrors.ErrStorageWrite)
	assert.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.Contains(t, err.Error(), "SignatureDoesNotMatch")
}

func TestSignedURLUploader_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	err := util.NewSignedURLUploader(time.Second).Put(context.Background(), server.URL, "application/pdf", strings.NewReader("x"), 1)

	assert.ErrorIs(t, err, apperrors.ErrStorageWrite)
}

func TestContentTypeByExtension(t *testing.T) {
	assert.Equal(t, "application/pdf", util.ContentTypeByExtension("Manual.PDF"))
	assert.Equal(t, "application/msword", util.ContentTypeByExtension("a.doc"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", util.ContentTypeByExtension("a.docx"))
	assert.Equal(t, "application/octet-stream", util.ContentTypeByExtension("noext"))
}

func TestInFlight(t *testing.T) {
	inflight := util.NewInFlight()

	release, err := inflight.Acquire("upload:tok")
	require.NoError(t, err)

	_, err = inflight.Acquire("upload:tok")
	assert.ErrorIs(t, err, apperrors.ErrInProgress)

	other, err := inflight.Acquire("upload:other")
	require.NoError(t, err)
	other()

	release()
	release()

	again, err := inflight.Acquire("upload:tok")
	require.NoError(t, err)
	again()
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperrors.ErrFileTooLarge, http.StatusBadRequest},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrUnauthenticated, http.StatusUnauthorized},
		{apperrors.ErrConflict, http.StatusConflict},
		{apperrors.ErrInProgress, http.StatusConflict},
		{fmt.Errorf("%w: nope", apperrors.ErrRejected), http.StatusUnprocessableEntity},
		{apperrors.ErrStorageWrite, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, util.StatusFromError(tt.err), tt.err.Error())
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Error de conexión. Por favor, intente nuevamente.", util.UserMessage(apperrors.ErrStorageWrite))
	assert.Equal(t, "Error inesperado", util.UserMessage(errors.New("panic")))
	assert.Equal(t, "El código debe tener 6 dígitos", util.UserMessage(apperrors.ErrInvalidCode))
}

func TestUserMessage_HidesLogContext(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"сообщение API",
			fmt.Errorf("[AuthenticationService] ошибка входа: %w", &apperrors.APIError{Status: 400, Message: "Credenciales inválidas"}),
			"Credenciales inválidas",
		},
		{
			"отклонено сервисом",
			fmt.Errorf("[DocumentService] ошибка: %w", fmt.Errorf("%w: Documento no encontrado", apperrors.ErrRejected)),
			"Documento no encontrado",
		},
		{
			"поле формы",
			fmt.Errorf("[UploadService] ошибка: %w", apperrors.MissingField("brand")),
			"Complete los campos obligatorios: brand",
		},
		{
			"email не подтвержден",
			fmt.Errorf("%w: Email no verificado", apperrors.ErrEmailNotVerified),
			"Por favor, verifica tu email antes de iniciar sesión",
		},
		{
			"конфликт без сообщения",
			fmt.Errorf("[UserService] ошибка: %w", apperrors.ErrConflict),
			"El recurso ya existe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := util.UserMessage(tt.err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "Service]")
		})
	}
}

func TestKnown(t *testing.T) {
	assert.True(t, util.Known(fmt.Errorf("ctx: %w", apperrors.ErrInvalidCode)))
	assert.True(t, util.Known(apperrors.ErrStorageWrite))
	assert.False(t, util.Known(errors.New("indique el archivo")))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	util.HandleError(rec, "bad", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":{"code":400,"text":"bad"}}`, rec.Body.String())
}
