package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/metrics"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/utils"
)

// Publisher promotes a page's draft to its published copy.
type Publisher interface {
	Publish(ctx context.Context, pageUID string) (*entity.Page, error)
}

type publishUseCase struct {
	pages     repository.PageRepository
	extractor repository.TagExtractor
	media     MediaManager
	clock     Clock
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// NewPublisher creates a new Publisher.
func NewPublisher(
	pages repository.PageRepository,
	extractor repository.TagExtractor,
	media MediaManager,
	clock Clock,
	log *zap.Logger,
	m *metrics.Metrics,
) Publisher {
	return &publishUseCase{
		pages:     pages,
		extractor: extractor,
		media:     media,
		clock:     clock,
		log:       log.Named("publish"),
		metrics:   m,
	}
}

func (uc *publishUseCase) Publish(ctx context.Context, pageUID string) (*entity.Page, error) {
	page, err := loadPage(ctx, uc.pages, pageUID)
	if err != nil {
		return nil, err
	}
	oldPublished := page.ContentSections

	now := uc.clock.now()
	page.ContentSections = slices.Clone(page.ContentDraftSections)
	page.IsPublished = true
	page.LastPublishIso = &now
	page.LastUpdateIso = now
	if err := uc.pages.Save(ctx, page); err != nil {
		return nil, fmt.Errorf("failed to save published sections for page %s: %w", pageUID, err)
	}

	outcome := "ok"
	classification, err := uc.extractor.ClassifyAndExtract(ctx, page.PublishedHTML())
	if err != nil {
		// Publishing must not depend on the classifier being reachable.
		uc.log.Warn("Tag extraction failed, publishing without data tags", zap.String("page_uid", pageUID), zap.Error(err))
		classification = entity.Classification{}
		outcome = "extraction_failed"
	}

	page.DataTags = buildDataTags(classification, now)
	page.ContentCategories = firstTagCategories(page.DataTags)
	if err := uc.pages.Save(ctx, page); err != nil {
		return nil, fmt.Errorf("failed to save data tags for page %s: %w", pageUID, err)
	}
	uc.metrics.IncPublish(outcome)
	uc.metrics.ObserveDataTags(len(page.DataTags))

	for _, s := range oldPublished {
		if page.PublishedIndex(s.UID) >= 0 {
			continue
		}
		for _, url := range s.ImageURLs() {
			uc.media.DeleteIfOrphaned(ctx, page, url)
		}
	}

	uc.log.Info("Page published",
		zap.String("page_uid", pageUID),
		zap.Int("sections", len(page.ContentSections)),
		zap.Int("data_tags", len(page.DataTags)),
	)
	return page, nil
}

// buildDataTags turns classifier output into the page's tag map.
// Repeated entity names bump the count and take the latest salience.
func buildDataTags(c entity.Classification, now time.Time) map[string]entity.DataTag {
	categories := flattenCategories(c.Categories)
	tags := make(map[string]entity.DataTag)
	for _, e := range c.Entities {
		if !e.Taggable() {
			continue
		}
		if tag, ok := tags[e.Name]; ok {
			tag.Count++
			tag.TagScore = e.Salience
			tags[e.Name] = tag
			continue
		}
		tags[e.Name] = entity.DataTag{
			UID:               utils.NewUID(),
			TagString:         e.Name,
			TagScore:          e.Salience,
			ContentCategories: slices.Clone(categories),
			Count:             1,
			TagCreatedIso:     now,
		}
	}
	return tags
}

// flattenCategories splits "/Travel/Tourist Destinations" style paths into
// their segments, keeping first-seen order.
func flattenCategories(paths []string) []string {
	out := []string{}
	for _, p := range paths {
		for _, part := range strings.Split(p, "/") {
			part = strings.TrimSpace(part)
			if part == "" || slices.Contains(out, part) {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

// firstTagCategories samples the categories of a single tag, the one with the
// lowest tag string.
func firstTagCategories(tags map[string]entity.DataTag) []string {
	if len(tags) == 0 {
		return []string{}
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return slices.Clone(tags[keys[0]].ContentCategories)
}
