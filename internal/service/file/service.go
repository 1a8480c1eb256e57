package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/storage"
	"github.com/google/uuid"
)

var (
	ErrInvalidFileType = errors.New("invalid file type: only pdf, jpg, jpeg, png allowed")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
)

var documentContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// StoredFile describes a blob written to the file store.
type StoredFile struct {
	Path        string
	ContentType string
	Size        int64
}

type FileService interface {
	// Leave attachment uploads
	UploadLeaveDocument(ctx context.Context, employeeID string, leaveRequestID int64, file io.Reader, filename string) (StoredFile, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
	maxSize int64
}

// NewFileService wraps storage. maxSize <= 0 disables the size check.
func NewFileService(storage storage.FileStorage, maxSize int64) FileService {
	return &fileServiceImpl{
		storage: storage,
		maxSize: maxSize,
	}
}

// UploadLeaveDocument stores a supporting document under
// leave-documents/<employee>/<request>/.
func (s *fileServiceImpl) UploadLeaveDocument(ctx context.Context, employeeID string, leaveRequestID int64, file io.Reader, filename string) (StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowed := []string{".pdf", ".jpg", ".jpeg", ".png"}
	if !slices.Contains(allowed, ext) {
		return StoredFile{}, ErrInvalidFileType
	}

	counter := &countingReader{r: file, limit: s.maxSize}

	newFilename := uuid.New().String() + ext
	path := filepath.Join("leave-documents", employeeID, strconv.FormatInt(leaveRequestID, 10), newFilename)
	contentType := documentContentTypes[ext]

	uploadedPath, err := s.storage.Upload(ctx, counter, path, contentType)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return StoredFile{}, ErrFileTooLarge
		}
		return StoredFile{}, fmt.Errorf("failed to upload leave document: %w", err)
	}

	return StoredFile{Path: uploadedPath, ContentType: contentType, Size: counter.n}, nil
}

// DeleteFile removes a stored file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL returns the public or presigned URL of a stored file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// countingReader tracks bytes read and fails once limit is exceeded.
type countingReader struct {
	r     io.Reader
	n     int64
	limit int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if c.limit > 0 && c.n > c.limit {
		return n, ErrFileTooLarge
	}
	return n, err
}
