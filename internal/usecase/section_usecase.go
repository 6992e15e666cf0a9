package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/utils"
)

const defaultMaxDraftSections = 80

// SectionPatch describes an edit to one draft section. Fields that do not
// apply to the section's type are ignored.
type SectionPatch struct {
	// NewText replaces the markdown when non-nil.
	NewText     *string
	NewImageURL string
	// DeleteImage resets the image slot to the placeholder.
	DeleteImage    bool
	NewVideoURL    string
	DeleteVideoURL bool
	// NthImage selects the slot (0-2) of a triple-image-col section.
	NthImage *int
}

func (p SectionPatch) changesImage() bool {
	return p.NewImageURL != "" || p.DeleteImage
}

// SectionStore edits the draft sections of a page.
type SectionStore interface {
	AddSection(ctx context.Context, pageUID string, sectionType entity.SectionType, index *int) (*entity.Page, entity.ContentSection, error)
	UpdateSection(ctx context.Context, pageUID, sectionUID string, patch SectionPatch) (*entity.Page, entity.ContentSection, error)
	DeleteSection(ctx context.Context, pageUID, sectionUID string) (*entity.Page, error)
	ReorderSections(ctx context.Context, pageUID string, fromIndex, toIndex int) (*entity.Page, error)
}

type sectionUseCase struct {
	pages          repository.PageRepository
	media          MediaManager
	placeholderURL string
	maxSections    int
	clock          Clock
	log            *zap.Logger
}

// NewSectionStore creates a new SectionStore. A non-positive maxSections
// falls back to 80.
func NewSectionStore(
	pages repository.PageRepository,
	media MediaManager,
	placeholderURL string,
	maxSections int,
	clock Clock,
	log *zap.Logger,
) SectionStore {
	if maxSections <= 0 {
		maxSections = defaultMaxDraftSections
	}
	return &sectionUseCase{
		pages:          pages,
		media:          media,
		placeholderURL: placeholderURL,
		maxSections:    maxSections,
		clock:          clock,
		log:            log.Named("sections"),
	}
}

func (uc *sectionUseCase) AddSection(ctx context.Context, pageUID string, sectionType entity.SectionType, index *int) (*entity.Page, entity.ContentSection, error) {
	page, err := loadPage(ctx, uc.pages, pageUID)
	if err != nil {
		return nil, entity.ContentSection{}, err
	}
	if len(page.ContentDraftSections) >= uc.maxSections {
		return nil, entity.ContentSection{}, ErrTooManySections
	}

	section, err := entity.NewContentSection(utils.NewUID(), sectionType, uc.placeholderURL)
	if err != nil {
		if errors.Is(err, entity.ErrUnknownSectionType) {
			return nil, entity.ContentSection{}, fmt.Errorf("%w: %w", ErrUnknownContentSection, err)
		}
		return nil, entity.ContentSection{}, err
	}

	landsFirst := len(page.ContentDraftSections) == 0 || (index != nil && *index == 0)
	if landsFirst && sectionType != entity.SectionHeader {
		return nil, entity.ContentSection{}, ErrFirstNotHeader
	}

	page.InsertDraft(section, index)
	if err := uc.save(ctx, page); err != nil {
		return nil, entity.ContentSection{}, err
	}
	return page, section, nil
}

func (uc *sectionUseCase) UpdateSection(ctx context.Context, pageUID, sectionUID string, patch SectionPatch) (*entity.Page, entity.ContentSection, error) {
	page, err := loadPage(ctx, uc.pages, pageUID)
	if err != nil {
		return nil, entity.ContentSection{}, err
	}
	idx := page.DraftIndex(sectionUID)
	if idx < 0 {
		return nil, entity.ContentSection{}, ErrUnknownContentSection
	}

	section := page.ContentDraftSections[idx]
	updated, replacedURL, err := uc.apply(section, patch)
	if err != nil {
		return nil, entity.ContentSection{}, err
	}

	page.ContentDraftSections[idx] = updated
	if err := uc.save(ctx, page); err != nil {
		return nil, entity.ContentSection{}, err
	}
	if replacedURL != "" {
		uc.media.DeleteIfOrphaned(ctx, page, replacedURL)
	}
	return page, updated, nil
}

// apply returns the patched section and the image URL it no longer uses, if any.
func (uc *sectionUseCase) apply(section entity.ContentSection, patch SectionPatch) (entity.ContentSection, string, error) {
	newImage := func(old entity.Image) (entity.Image, string) {
		if !patch.changesImage() {
			return old, ""
		}
		url := patch.NewImageURL
		if patch.DeleteImage {
			url = uc.placeholderURL
		}
		replaced := old.URL
		if replaced == url {
			replaced = ""
		}
		return entity.Image{URL: url, Kind: entity.ImageKindPhoto}, replaced
	}
	newText := func(old entity.TextPair) entity.TextPair {
		if patch.NewText == nil {
			return old
		}
		return entity.NewTextPair(*patch.NewText)
	}

	var replaced string
	switch c := section.Content.(type) {
	case entity.HeaderContent:
		c.Text = newText(c.Text)
		section.Content = c
	case entity.TextBlockContent:
		c.Text = newText(c.Text)
		section.Content = c
	case entity.TextImageLeftContent:
		c.Text = newText(c.Text)
		c.Image, replaced = newImage(c.Image)
		section.Content = c
	case entity.TextImageRightContent:
		c.Text = newText(c.Text)
		c.Image, replaced = newImage(c.Image)
		section.Content = c
	case entity.ImageRowContent:
		c.Image, replaced = newImage(c.Image)
		section.Content = c
	case entity.TripleImageColContent:
		if patch.changesImage() {
			n := patch.NthImage
			if n == nil || *n < 0 || *n > 2 {
				return section, "", ErrUndefinedImagePosition
			}
			c.Images[*n], replaced = newImage(c.Images[*n])
		}
		section.Content = c
	case entity.VideoRowEmbedContent:
		if patch.NewVideoURL != "" {
			c.Link = patch.NewVideoURL
		}
		if patch.DeleteVideoURL {
			c.Link = ""
		}
		section.Content = c
	default:
		return section, "", ErrUnknownContentSection
	}
	return section, replaced, nil
}

func (uc *sectionUseCase) DeleteSection(ctx context.Context, pageUID, sectionUID string) (*entity.Page, error) {
	page, err := loadPage(ctx, uc.pages, pageUID)
	if err != nil {
		return nil, err
	}
	idx := page.DraftIndex(sectionUID)
	if idx < 0 {
		return nil, ErrUnknownContentSection
	}

	removed := page.ContentDraftSections[idx]
	page.ContentDraftSections = append(page.ContentDraftSections[:idx:idx], page.ContentDraftSections[idx+1:]...)
	if err := uc.save(ctx, page); err != nil {
		return nil, err
	}

	// Published sections keep their files until the next publish drops them.
	if page.PublishedIndex(sectionUID) >= 0 {
		return page, nil
	}
	for _, url := range removed.ImageURLs() {
		uc.media.DeleteIfOrphaned(ctx, page, url)
	}
	return page, nil
}

func (uc *sectionUseCase) ReorderSections(ctx context.Context, pageUID string, fromIndex, toIndex int) (*entity.Page, error) {
	page, err := loadPage(ctx, uc.pages, pageUID)
	if err != nil {
		return nil, err
	}
	draft := page.ContentDraftSections
	if fromIndex < 0 || fromIndex >= len(draft) || toIndex < 0 || toIndex >= len(draft) {
		return nil, ErrUnknownContentSection
	}

	// Only position 0 is guarded.
	if (toIndex == 0 && draft[fromIndex].Type() != entity.SectionHeader) ||
		(fromIndex == 0 && draft[toIndex].Type() != entity.SectionHeader) {
		return nil, ErrFirstNotHeader
	}

	page.MoveDraft(fromIndex, toIndex)
	if err := uc.save(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (uc *sectionUseCase) save(ctx context.Context, page *entity.Page) error {
	page.LastUpdateIso = uc.clock.now()
	if err := uc.pages.Save(ctx, page); err != nil {
		return fmt.Errorf("failed to save page %s: %w", page.UID, err)
	}
	uc.log.Debug("Draft sections saved", zap.String("page_uid", page.UID), zap.Int("sections", len(page.ContentDraftSections)))
	return nil
}
