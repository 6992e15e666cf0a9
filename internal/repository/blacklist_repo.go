package repository

import (
	"context"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
)

// BlacklistRepository defines the interface for categories a user opted out of.
type BlacklistRepository interface {
	// Exists reports whether the user already blacklisted the category.
	Exists(ctx context.Context, userUID, category string) (bool, error)
	Insert(ctx context.Context, entry entity.BlacklistedDataCategory) error
	Delete(ctx context.Context, userUID, category string) error
	// List returns the user's blacklisted categories.
	List(ctx context.Context, userUID string) ([]entity.BlacklistedDataCategory, error)
}
