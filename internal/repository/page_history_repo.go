package repository

import (
	"context"
	"time"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
)

// PageHistoryRepository defines the interface for per-user page visit history.
// There is no uniqueness constraint on (userUid, pageUid).
type PageHistoryRepository interface {
	// FindByUserAndPage returns the first history row for the pair, or ErrNotFound.
	FindByUserAndPage(ctx context.Context, userUID, pageUID string) (*entity.PageHistory, error)
	// Create inserts a new history row.
	Create(ctx context.Context, history *entity.PageHistory) error
	// RecordRevisit increments numberOfVisits and sets lastUpdateIso. When
	// publishIso is non-nil, lastPagePublishIso is set to it as well.
	RecordRevisit(ctx context.Context, uid string, at time.Time, publishIso *time.Time) error
}
