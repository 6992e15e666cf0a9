package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

// UserDataTagRepoImpl provides the per-user tag ledger on PostgreSQL.
type UserDataTagRepoImpl struct {
	db *pgxpool.Pool
}

// NewUserDataTagRepo creates a new instance of UserDataTagRepoImpl.
func NewUserDataTagRepo(db *pgxpool.Pool) *UserDataTagRepoImpl {
	return &UserDataTagRepoImpl{db: db}
}

// InsertMany queues one insert per row in a single batch round trip.
func (r *UserDataTagRepoImpl) InsertMany(ctx context.Context, tags []entity.UserDataTag) error {
	if len(tags) == 0 {
		return nil
	}
	query := `
		INSERT INTO user_data_tags (uid, user_uid, tag_string, tag_score, content_categories, count, tag_created_iso, tag_recorded_for_user_iso)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, t := range tags {
		batch.Queue(query,
			t.UID,
			t.UserUID,
			t.TagString,
			t.TagScore,
			nonNilStrings(t.ContentCategories),
			t.Count,
			t.TagCreatedIso,
			t.TagRecordedForUserIso,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()
	for i := range tags {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert user data tag %d of %d: %w", i+1, len(tags), err)
		}
	}
	return br.Close()
}

func (r *UserDataTagRepoImpl) FindRecent(ctx context.Context, q repository.UserDataTagQuery) ([]entity.UserDataTag, error) {
	rows, err := r.db.Query(ctx, findRecentTagsQuery, findRecentTagsArgs(q)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []entity.UserDataTag
	for rows.Next() {
		var t entity.UserDataTag
		if err := rows.Scan(
			&t.UID,
			&t.UserUID,
			&t.TagString,
			&t.TagScore,
			&t.ContentCategories,
			&t.Count,
			&t.TagCreatedIso,
			&t.TagRecordedForUserIso,
		); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *UserDataTagRepoImpl) DeleteByCategory(ctx context.Context, userUID, category string) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteTagsByCategoryQuery, userUID, category)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *UserDataTagRepoImpl) CountForUser(ctx context.Context, userUID string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_data_tags WHERE user_uid = $1;`, userUID).Scan(&n)
	return n, err
}
