package repository

import "context"

// ObjectStorage defines the contract for the media bucket.
type ObjectStorage interface {
	// Save writes an object and returns its public URL.
	Save(ctx context.Context, path string, data []byte, contentType string) (string, error)
	// Delete removes an object by path.
	Delete(ctx context.Context, path string) error
}
