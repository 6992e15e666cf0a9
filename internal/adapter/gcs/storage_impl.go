package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

const (
	uploadTimeout = 2 * time.Minute
	deleteTimeout = 30 * time.Second
)

// StorageImpl provides the ObjectStorage interface on a Google Cloud Storage bucket.
// Objects are stored flat, keyed by their file name.
type StorageImpl struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
}

// NewStorage creates a bucket adapter. An empty publicBaseURL falls back to
// storage.googleapis.com.
func NewStorage(client *storage.Client, bucket, publicBaseURL string) *StorageImpl {
	return &StorageImpl{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
	}
}

func (s *StorageImpl) Save(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return s.PublicURL(path), nil
}

func (s *StorageImpl) Delete(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	if err := s.client.Bucket(s.bucket).Object(path).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", path, s.bucket, err)
	}
	return nil
}

// PublicURL returns the browser-facing URL of an object.
func (s *StorageImpl) PublicURL(path string) string {
	key := url.PathEscape(strings.TrimLeft(path, "/"))
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}
