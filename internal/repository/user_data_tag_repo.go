package repository

import (
	"context"
	"time"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
)

// UserDataTagQuery selects ledger rows for a user.
type UserDataTagQuery struct {
	UserUID string
	// RecordedAtOrBefore bounds tagRecordedForUserIso inclusively.
	RecordedAtOrBefore time.Time
	// Category, when set, keeps only rows carrying it.
	Category string
	Limit    int
}

// UserDataTagRepository defines the interface for the per-user tag ledger.
type UserDataTagRepository interface {
	// InsertMany appends rows to the ledger.
	InsertMany(ctx context.Context, tags []entity.UserDataTag) error
	// FindRecent returns matching rows, newest first.
	FindRecent(ctx context.Context, q UserDataTagQuery) ([]entity.UserDataTag, error)
	// DeleteByCategory removes every row of the user carrying category.
	DeleteByCategory(ctx context.Context, userUID, category string) (int64, error)
	// CountForUser returns the number of rows stored for the user.
	CountForUser(ctx context.Context, userUID string) (int64, error)
}
