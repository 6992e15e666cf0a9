package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
)

// BlacklistRepoImpl stores blacklisted categories in PostgreSQL.
type BlacklistRepoImpl struct {
	db *pgxpool.Pool
}

// NewBlacklistRepo creates a new instance of BlacklistRepoImpl.
func NewBlacklistRepo(db *pgxpool.Pool) *BlacklistRepoImpl {
	return &BlacklistRepoImpl{db: db}
}

func (r *BlacklistRepoImpl) Exists(ctx context.Context, userUID, category string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM blacklisted_categories WHERE user_uid = $1 AND category = $2);`
	err := r.db.QueryRow(ctx, query, userUID, category).Scan(&exists)
	return exists, err
}

// Insert is a no-op when the pair already exists.
func (r *BlacklistRepoImpl) Insert(ctx context.Context, entry entity.BlacklistedDataCategory) error {
	query := `
		INSERT INTO blacklisted_categories (user_uid, category)
		VALUES ($1, $2)
		ON CONFLICT (user_uid, category) DO NOTHING;
	`
	_, err := r.db.Exec(ctx, query, entry.UserUID, entry.Category)
	return err
}

func (r *BlacklistRepoImpl) Delete(ctx context.Context, userUID, category string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM blacklisted_categories WHERE user_uid = $1 AND category = $2;`, userUID, category)
	return err
}

func (r *BlacklistRepoImpl) List(ctx context.Context, userUID string) ([]entity.BlacklistedDataCategory, error) {
	rows, err := r.db.Query(ctx, `SELECT user_uid, category FROM blacklisted_categories WHERE user_uid = $1 ORDER BY category;`, userUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []entity.BlacklistedDataCategory{}
	for rows.Next() {
		var e entity.BlacklistedDataCategory
		if err := rows.Scan(&e.UserUID, &e.Category); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
