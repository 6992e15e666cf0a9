package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

// PageRepoImpl provides a concrete implementation for the PageRepository interface using PostgreSQL.
type PageRepoImpl struct {
	db *pgxpool.Pool
}

// NewPageRepo creates a new instance of PageRepoImpl.
func NewPageRepo(db *pgxpool.Pool) *PageRepoImpl {
	return &PageRepoImpl{db: db}
}

type pageDocuments struct {
	sections, draft, tags []byte
}

func encodePage(p *entity.Page) (pageDocuments, error) {
	var docs pageDocuments
	var err error
	if docs.sections, err = json.Marshal(nonNilSections(p.ContentSections)); err != nil {
		return docs, fmt.Errorf("encode content sections: %w", err)
	}
	if docs.draft, err = json.Marshal(nonNilSections(p.ContentDraftSections)); err != nil {
		return docs, fmt.Errorf("encode draft sections: %w", err)
	}
	tags := p.DataTags
	if tags == nil {
		tags = map[string]entity.DataTag{}
	}
	if docs.tags, err = json.Marshal(tags); err != nil {
		return docs, fmt.Errorf("encode data tags: %w", err)
	}
	return docs, nil
}

func (r *PageRepoImpl) Get(ctx context.Context, uid string) (*entity.Page, error) {
	query := `
		SELECT uid, site_uid, page_owner, content_sections, content_draft_sections, data_tags,
		       content_categories, is_published, last_publish_iso, last_update_iso, created_iso,
		       total_visits, total_impressions, likes, number_of_reports, is_flagged, is_banned, is_deleted
		FROM pages
		WHERE uid = $1;
	`
	var p entity.Page
	var docs pageDocuments
	err := r.db.QueryRow(ctx, query, uid).Scan(
		&p.UID,
		&p.SiteUID,
		&p.PageOwner,
		&docs.sections,
		&docs.draft,
		&docs.tags,
		&p.ContentCategories,
		&p.IsPublished,
		&p.LastPublishIso,
		&p.LastUpdateIso,
		&p.CreatedIso,
		&p.TotalVisits,
		&p.TotalImpressions,
		&p.Likes,
		&p.NumberOfReports,
		&p.IsFlagged,
		&p.IsBanned,
		&p.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(docs.sections, &p.ContentSections); err != nil {
		return nil, fmt.Errorf("decode content sections of page %s: %w", uid, err)
	}
	if err := json.Unmarshal(docs.draft, &p.ContentDraftSections); err != nil {
		return nil, fmt.Errorf("decode draft sections of page %s: %w", uid, err)
	}
	if err := json.Unmarshal(docs.tags, &p.DataTags); err != nil {
		return nil, fmt.Errorf("decode data tags of page %s: %w", uid, err)
	}
	return &p, nil
}

func (r *PageRepoImpl) Create(ctx context.Context, p *entity.Page) error {
	docs, err := encodePage(p)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO pages (uid, site_uid, page_owner, content_sections, content_draft_sections, data_tags,
		                   content_categories, is_published, last_publish_iso, last_update_iso, created_iso,
		                   total_visits, total_impressions, likes, number_of_reports, is_flagged, is_banned, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = r.db.Exec(ctx, query,
		p.UID,
		p.SiteUID,
		p.PageOwner,
		docs.sections,
		docs.draft,
		docs.tags,
		nonNilStrings(p.ContentCategories),
		p.IsPublished,
		p.LastPublishIso,
		p.LastUpdateIso,
		p.CreatedIso,
		p.TotalVisits,
		p.TotalImpressions,
		p.Likes,
		p.NumberOfReports,
		p.IsFlagged,
		p.IsBanned,
		p.IsDeleted,
	)
	return err
}

// Save replaces the page document. Counters are owned by IncrementCounter.
func (r *PageRepoImpl) Save(ctx context.Context, p *entity.Page) error {
	docs, err := encodePage(p)
	if err != nil {
		return err
	}
	query := `
		UPDATE pages SET
			site_uid = $2,
			page_owner = $3,
			content_sections = $4,
			content_draft_sections = $5,
			data_tags = $6,
			content_categories = $7,
			is_published = $8,
			last_publish_iso = $9,
			last_update_iso = $10,
			likes = $11,
			number_of_reports = $12,
			is_flagged = $13,
			is_banned = $14,
			is_deleted = $15
		WHERE uid = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		p.UID,
		p.SiteUID,
		p.PageOwner,
		docs.sections,
		docs.draft,
		docs.tags,
		nonNilStrings(p.ContentCategories),
		p.IsPublished,
		p.LastPublishIso,
		p.LastUpdateIso,
		p.Likes,
		p.NumberOfReports,
		p.IsFlagged,
		p.IsBanned,
		p.IsDeleted,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PageRepoImpl) IncrementCounter(ctx context.Context, uid string, counter entity.PageCounter, delta int64) error {
	query, err := incrementCounterQuery(counter)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, query, uid, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nonNilSections(s []entity.ContentSection) []entity.ContentSection {
	if s == nil {
		return []entity.ContentSection{}
	}
	return s
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
