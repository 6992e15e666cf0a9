package repository

import (
	"context"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
)

// TagExtractor defines the contract for the text classification engine.
type TagExtractor interface {
	// ClassifyAndExtract returns the categories and salient entities of an HTML document.
	ClassifyAndExtract(ctx context.Context, html string) (entity.Classification, error)
}
