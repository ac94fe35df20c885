package util

import (
	"context"
	"docs-portal/internal/apperrors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// SignedURLUploader : прямая запись файла в хранилище по pre-signed URL.
// Заголовок Authorization не отправляется, доступ дает сама ссылка
type SignedURLUploader struct {
	client *http.Client
}

func NewSignedURLUploader(timeout time.Duration) *SignedURLUploader {
	return &SignedURLUploader{
		client: &http.Client{
			Timeout: timeout, // Для очень больших файлов
		},
	}
}

func NewSignedURLUploaderWithClient(client *http.Client) *SignedURLUploader {
	return &SignedURLUploader{client: client}
}

// Put : PUT тела файла, успех только при ответе 2xx
func (u *SignedURLUploader) Put(ctx context.Context, signedURL, contentType string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, body)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ошибка выполнения запроса: %w", apperrors.ErrStorageWrite, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: статус %d, ответ: %s", apperrors.ErrStorageWrite, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return nil
}

// ContentTypeByExtension определяет MIME type файла
func ContentTypeByExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return "text/plain"
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".zip":
		return "application/zip"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
