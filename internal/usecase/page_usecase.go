package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/utils"
)

// PageService covers page lifecycle and counters.
type PageService interface {
	CreatePage(ctx context.Context, siteUID, ownerUID string) (*entity.Page, error)
	GetPage(ctx context.Context, pageUID string) (*entity.Page, error)
	// EnsurePageOwner fails with ErrNotSiteOwner unless userUID owns the page.
	EnsurePageOwner(ctx context.Context, pageUID, userUID string) error
	// DeletePage soft-deletes the page and purges its media.
	DeletePage(ctx context.Context, pageUID string) error
	CountVisit(ctx context.Context, pageUID string) error
	RecordImpression(ctx context.Context, pageUID string) error
}

type pageUseCase struct {
	pages          repository.PageRepository
	media          MediaManager
	placeholderURL string
	clock          Clock
	log            *zap.Logger
}

// NewPageService creates a new PageService.
func NewPageService(
	pages repository.PageRepository,
	media MediaManager,
	placeholderURL string,
	clock Clock,
	log *zap.Logger,
) PageService {
	return &pageUseCase{
		pages:          pages,
		media:          media,
		placeholderURL: placeholderURL,
		clock:          clock,
		log:            log.Named("pages"),
	}
}

// loadPage fetches a live page, translating a missing or deleted page to ErrNoPage.
func loadPage(ctx context.Context, pages repository.PageRepository, uid string) (*entity.Page, error) {
	page, err := pages.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoPage
		}
		return nil, fmt.Errorf("failed to load page %s: %w", uid, err)
	}
	if page.IsDeleted {
		return nil, ErrNoPage
	}
	return page, nil
}

func (uc *pageUseCase) CreatePage(ctx context.Context, siteUID, ownerUID string) (*entity.Page, error) {
	if strings.TrimSpace(siteUID) == "" {
		return nil, ErrNoSite
	}
	header, err := entity.NewContentSection(utils.NewUID(), entity.SectionHeader, uc.placeholderURL)
	if err != nil {
		return nil, err
	}

	now := uc.clock.now()
	page := &entity.Page{
		UID:                  utils.NewUID(),
		SiteUID:              siteUID,
		PageOwner:            ownerUID,
		ContentSections:      []entity.ContentSection{},
		ContentDraftSections: []entity.ContentSection{header},
		DataTags:             map[string]entity.DataTag{},
		ContentCategories:    []string{},
		CreatedIso:           now,
		LastUpdateIso:        now,
	}
	if err := uc.pages.Create(ctx, page); err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	uc.log.Info("Page created", zap.String("page_uid", page.UID), zap.String("site_uid", siteUID))
	return page, nil
}

func (uc *pageUseCase) GetPage(ctx context.Context, pageUID string) (*entity.Page, error) {
	return loadPage(ctx, uc.pages, pageUID)
}

func (uc *pageUseCase) EnsurePageOwner(ctx context.Context, pageUID, userUID string) error {
	page, err := loadPage(ctx, uc.pages, pageUID)
	if err != nil {
		return err
	}
	if userUID == "" || page.PageOwner != userUID {
		return ErrNotSiteOwner
	}
	return nil
}

func (uc *pageUseCase) DeletePage(ctx context.Context, pageUID string) error {
	page, err := loadPage(ctx, uc.pages, pageUID)
	if err != nil {
		return err
	}

	var urls []string
	for _, list := range [][]entity.ContentSection{page.ContentDraftSections, page.ContentSections} {
		for _, s := range list {
			urls = append(urls, s.ImageURLs()...)
		}
	}

	page.IsDeleted = true
	page.ContentSections = []entity.ContentSection{}
	page.ContentDraftSections = []entity.ContentSection{}
	page.DataTags = map[string]entity.DataTag{}
	page.ContentCategories = []string{}
	page.LastUpdateIso = uc.clock.now()
	if err := uc.pages.Save(ctx, page); err != nil {
		return fmt.Errorf("failed to save deleted page %s: %w", pageUID, err)
	}

	seen := make(map[string]bool, len(urls))
	for _, url := range urls {
		if seen[url] {
			continue
		}
		seen[url] = true
		uc.media.Purge(ctx, url)
	}
	uc.log.Info("Page deleted", zap.String("page_uid", pageUID), zap.Int("media_files", len(seen)))
	return nil
}

func (uc *pageUseCase) CountVisit(ctx context.Context, pageUID string) error {
	return uc.increment(ctx, pageUID, entity.CounterVisits)
}

func (uc *pageUseCase) RecordImpression(ctx context.Context, pageUID string) error {
	return uc.increment(ctx, pageUID, entity.CounterImpressions)
}

// increment only touches live pages; a deleted page yields ErrNoPage with
// the stored counter unchanged.
func (uc *pageUseCase) increment(ctx context.Context, pageUID string, counter entity.PageCounter) error {
	if _, err := loadPage(ctx, uc.pages, pageUID); err != nil {
		return err
	}
	err := uc.pages.IncrementCounter(ctx, pageUID, counter, 1)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNoPage
	}
	if err != nil {
		return fmt.Errorf("failed to increment %s for page %s: %w", counter, pageUID, err)
	}
	return nil
}
