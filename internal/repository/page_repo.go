package repository

import (
	"context"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
)

// PageRepository defines the interface for storing page documents.
type PageRepository interface {
	// Get loads a page by uid. It returns ErrNotFound when no page matches.
	Get(ctx context.Context, uid string) (*entity.Page, error)
	// Create inserts a new page.
	Create(ctx context.Context, page *entity.Page) error
	// Save replaces the stored page with the given document. Counters are
	// left untouched; only IncrementCounter changes them.
	Save(ctx context.Context, page *entity.Page) error
	// IncrementCounter atomically adds delta to a page counter.
	IncrementCounter(ctx context.Context, uid string, counter entity.PageCounter, delta int64) error
}
