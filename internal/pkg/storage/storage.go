package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrInvalidPath = errors.New("invalid file path")

type FileStorage interface {
	// Upload writes a file and returns its store-relative path
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, path string) error

	// GetURL returns a URL clients can fetch the file from
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, path string) (bool, error)
}
