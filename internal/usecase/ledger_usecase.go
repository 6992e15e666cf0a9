package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/metrics"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/utils"
)

const defaultLedgerFetchLimit = 200

// Ledger attributes page data tags to users and manages their opt-outs.
type Ledger interface {
	// RecordForUser appends the page's data tags to the user's timeline,
	// skipping tags in blacklisted categories.
	RecordForUser(ctx context.Context, pageUID, userUID string) error
	// FetchForUser returns the newest tags recorded at or before from,
	// grouped by category.
	FetchForUser(ctx context.Context, userUID string, from time.Time, category string) (map[string][]entity.UserDataTag, error)
	BlacklistCategory(ctx context.Context, category, userUID string) error
	UnblacklistCategory(ctx context.Context, category, userUID string) error
	ListBlacklisted(ctx context.Context, userUID string) ([]entity.BlacklistedDataCategory, error)
	CountForUser(ctx context.Context, userUID string) (int64, error)
}

type ledgerUseCase struct {
	pages      repository.PageRepository
	tags       repository.UserDataTagRepository
	blacklist  repository.BlacklistRepository
	fetchLimit int
	clock      Clock
	log        *zap.Logger
	metrics    *metrics.Metrics
}

// NewLedger creates a new Ledger. A non-positive fetchLimit falls back to 200.
func NewLedger(
	pages repository.PageRepository,
	tags repository.UserDataTagRepository,
	blacklist repository.BlacklistRepository,
	fetchLimit int,
	clock Clock,
	log *zap.Logger,
	m *metrics.Metrics,
) Ledger {
	if fetchLimit <= 0 {
		fetchLimit = defaultLedgerFetchLimit
	}
	return &ledgerUseCase{
		pages:      pages,
		tags:       tags,
		blacklist:  blacklist,
		fetchLimit: fetchLimit,
		clock:      clock,
		log:        log.Named("ledger"),
		metrics:    m,
	}
}

func (uc *ledgerUseCase) RecordForUser(ctx context.Context, pageUID, userUID string) error {
	page, err := loadPage(ctx, uc.pages, pageUID)
	if err != nil {
		return err
	}
	if len(page.DataTags) == 0 {
		return ErrNoDataTags
	}

	entries, err := uc.blacklist.List(ctx, userUID)
	if err != nil {
		return fmt.Errorf("failed to load blacklist for user %s: %w", userUID, err)
	}
	blocked := make([]string, 0, len(entries))
	for _, e := range entries {
		blocked = append(blocked, e.Category)
	}

	keys := make([]string, 0, len(page.DataTags))
	for k := range page.DataTags {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	now := uc.clock.now()
	rows := make([]entity.UserDataTag, 0, len(keys))
	skipped := 0
	for _, k := range keys {
		tag := page.DataTags[k]
		row := entity.UserDataTag{
			UID:                   utils.NewUID(),
			UserUID:               userUID,
			TagString:             tag.TagString,
			TagScore:              tag.TagScore,
			ContentCategories:     slices.Clone(tag.ContentCategories),
			Count:                 tag.Count,
			TagCreatedIso:         tag.TagCreatedIso,
			TagRecordedForUserIso: now,
		}
		if row.HasAnyCategory(blocked) {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	uc.metrics.AddLedgerRecords("blacklisted", skipped)

	if len(rows) == 0 {
		return nil
	}
	if err := uc.tags.InsertMany(ctx, rows); err != nil {
		return fmt.Errorf("failed to record data tags for user %s: %w", userUID, err)
	}
	uc.metrics.AddLedgerRecords("recorded", len(rows))
	uc.log.Debug("Recorded data tags for user",
		zap.String("page_uid", pageUID),
		zap.String("user_uid", userUID),
		zap.Int("recorded", len(rows)),
		zap.Int("blacklisted", skipped),
	)
	return nil
}

func (uc *ledgerUseCase) FetchForUser(ctx context.Context, userUID string, from time.Time, category string) (map[string][]entity.UserDataTag, error) {
	tags, err := uc.tags.FindRecent(ctx, repository.UserDataTagQuery{
		UserUID:            userUID,
		RecordedAtOrBefore: from,
		Category:           category,
		Limit:              uc.fetchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data tags for user %s: %w", userUID, err)
	}

	byCategory := make(map[string][]entity.UserDataTag)
	for _, tag := range tags {
		for _, c := range tag.ContentCategories {
			byCategory[c] = append(byCategory[c], tag)
		}
	}
	return byCategory, nil
}

func (uc *ledgerUseCase) BlacklistCategory(ctx context.Context, category, userUID string) error {
	exists, err := uc.blacklist.Exists(ctx, userUID, category)
	if err != nil {
		return fmt.Errorf("failed to check blacklist: %w", err)
	}
	if exists {
		return ErrAlreadyBlacklisted
	}

	if err := uc.blacklist.Insert(ctx, entity.BlacklistedDataCategory{UserUID: userUID, Category: category}); err != nil {
		return fmt.Errorf("failed to blacklist category %q: %w", category, err)
	}
	purged, err := uc.tags.DeleteByCategory(ctx, userUID, category)
	if err != nil {
		return fmt.Errorf("failed to purge data tags in category %q: %w", category, err)
	}
	uc.log.Info("Category blacklisted",
		zap.String("user_uid", userUID),
		zap.String("category", category),
		zap.Int64("purged", purged),
	)
	return nil
}

func (uc *ledgerUseCase) UnblacklistCategory(ctx context.Context, category, userUID string) error {
	if err := uc.blacklist.Delete(ctx, userUID, category); err != nil {
		return fmt.Errorf("failed to unblacklist category %q: %w", category, err)
	}
	return nil
}

func (uc *ledgerUseCase) ListBlacklisted(ctx context.Context, userUID string) ([]entity.BlacklistedDataCategory, error) {
	entries, err := uc.blacklist.List(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blacklist for user %s: %w", userUID, err)
	}
	return entries, nil
}

func (uc *ledgerUseCase) CountForUser(ctx context.Context, userUID string) (int64, error) {
	n, err := uc.tags.CountForUser(ctx, userUID)
	if err != nil {
		return 0, fmt.Errorf("failed to count data tags for user %s: %w", userUID, err)
	}
	return n, nil
}
