package ports

import (
	"context"
	"io"
)

// ObjectStorage : запись файла по pre-signed URL
type ObjectStorage interface {
	Put(ctx context.Context, signedURL, contentType string, body io.Reader, size int64) error
}
