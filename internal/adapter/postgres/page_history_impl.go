package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

// PageHistoryRepoImpl stores visit history rows in PostgreSQL.
type PageHistoryRepoImpl struct {
	db *pgxpool.Pool
}

// NewPageHistoryRepo creates a new instance of PageHistoryRepoImpl.
func NewPageHistoryRepo(db *pgxpool.Pool) *PageHistoryRepoImpl {
	return &PageHistoryRepoImpl{db: db}
}

func (r *PageHistoryRepoImpl) FindByUserAndPage(ctx context.Context, userUID, pageUID string) (*entity.PageHistory, error) {
	query := `
		SELECT uid, user_uid, page_uid, number_of_visits, created_iso, last_update_iso, last_page_publish_iso
		FROM page_history
		WHERE user_uid = $1 AND page_uid = $2
		ORDER BY created_iso ASC
		LIMIT 1;
	`
	var h entity.PageHistory
	err := r.db.QueryRow(ctx, query, userUID, pageUID).Scan(
		&h.UID,
		&h.UserUID,
		&h.PageUID,
		&h.NumberOfVisits,
		&h.CreatedIso,
		&h.LastUpdateIso,
		&h.LastPagePublishIso,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *PageHistoryRepoImpl) Create(ctx context.Context, h *entity.PageHistory) error {
	query := `
		INSERT INTO page_history (uid, user_uid, page_uid, number_of_visits, created_iso, last_update_iso, last_page_publish_iso)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		h.UID,
		h.UserUID,
		h.PageUID,
		h.NumberOfVisits,
		h.CreatedIso,
		h.LastUpdateIso,
		h.LastPagePublishIso,
	)
	return err
}

// RecordRevisit bumps the visit count in place; lastPagePublishIso only
// moves when publishIso is given.
func (r *PageHistoryRepoImpl) RecordRevisit(ctx context.Context, uid string, at time.Time, publishIso *time.Time) error {
	tag, err := r.db.Exec(ctx, recordRevisitQuery, recordRevisitArgs(uid, at, publishIso)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
