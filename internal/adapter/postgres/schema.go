package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema mirrors the document collections. Sections and tags are stored as
// JSONB documents; category arrays are TEXT[] so membership can use ANY.
// page_history deliberately has no unique index on (user_uid, page_uid).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS pages (
		uid                    TEXT PRIMARY KEY,
		site_uid               TEXT NOT NULL,
		page_owner             TEXT NOT NULL,
		content_sections       JSONB NOT NULL DEFAULT '[]',
		content_draft_sections JSONB NOT NULL DEFAULT '[]',
		data_tags              JSONB NOT NULL DEFAULT '{}',
		content_categories     TEXT[] NOT NULL DEFAULT '{}',
		is_published           BOOLEAN NOT NULL DEFAULT FALSE,
		last_publish_iso       TIMESTAMPTZ,
		last_update_iso        TIMESTAMPTZ NOT NULL,
		created_iso            TIMESTAMPTZ NOT NULL,
		total_visits           BIGINT NOT NULL DEFAULT 0,
		total_impressions      BIGINT NOT NULL DEFAULT 0,
		likes                  BIGINT NOT NULL DEFAULT 0,
		number_of_reports      BIGINT NOT NULL DEFAULT 0,
		is_flagged             BOOLEAN NOT NULL DEFAULT FALSE,
		is_banned              BOOLEAN NOT NULL DEFAULT FALSE,
		is_deleted             BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE TABLE IF NOT EXISTS page_history (
		uid                   TEXT PRIMARY KEY,
		user_uid              TEXT NOT NULL,
		page_uid              TEXT NOT NULL,
		number_of_visits      INTEGER NOT NULL DEFAULT 1,
		created_iso           TIMESTAMPTZ NOT NULL,
		last_update_iso       TIMESTAMPTZ NOT NULL,
		last_page_publish_iso TIMESTAMPTZ
	);`,
	`CREATE INDEX IF NOT EXISTS page_history_user_page_idx ON page_history (user_uid, page_uid);`,
	`CREATE TABLE IF NOT EXISTS user_data_tags (
		uid                       TEXT PRIMARY KEY,
		user_uid                  TEXT NOT NULL,
		tag_string                TEXT NOT NULL,
		tag_score                 DOUBLE PRECISION NOT NULL,
		content_categories        TEXT[] NOT NULL DEFAULT '{}',
		count                     INTEGER NOT NULL,
		tag_created_iso           TIMESTAMPTZ NOT NULL,
		tag_recorded_for_user_iso TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS user_data_tags_user_recorded_idx ON user_data_tags (user_uid, tag_recorded_for_user_iso DESC);`,
	`CREATE INDEX IF NOT EXISTS user_data_tags_categories_idx ON user_data_tags USING GIN (content_categories);`,
	`CREATE TABLE IF NOT EXISTS blacklisted_categories (
		user_uid TEXT NOT NULL,
		category TEXT NOT NULL,
		PRIMARY KEY (user_uid, category)
	);`,
}

// EnsureSchema creates the tables and indexes when they do not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
