package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/metrics"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/utils"
)

const defaultDedupeTTL = 48 * time.Hour

// MediaPolicy lists the URLs that must never be removed from storage.
type MediaPolicy struct {
	PlaceholderURL string
	DummyPhotoURLs []string
	// ProtectedHosts are third-party stock hosts, matched on the URL host.
	ProtectedHosts []string
	// DedupeTTL bounds how long a queued path is remembered.
	DedupeTTL time.Duration
}

// IsProtected reports whether url belongs to the shared placeholder set.
func (p MediaPolicy) IsProtected(url string) bool {
	if url == "" || url == p.PlaceholderURL || slices.Contains(p.DummyPhotoURLs, url) {
		return true
	}
	host := utils.HostOf(url)
	for _, h := range p.ProtectedHosts {
		h = strings.ToLower(h)
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// MediaManager decides when an uploaded image can be removed from storage.
type MediaManager interface {
	// IsReferenced reports whether url fills any image slot of the page.
	IsReferenced(page *entity.Page, url string) bool
	// DeleteIfOrphaned removes url from storage unless it is protected or
	// still referenced by page. Failures are logged, never returned.
	DeleteIfOrphaned(ctx context.Context, page *entity.Page, url string)
	// Purge removes url without the reference check. Protected URLs are kept.
	Purge(ctx context.Context, url string)
}

// MediaOption configures a MediaManager.
type MediaOption func(*mediaManager)

// WithDeletionQueue hands deletions to a background worker instead of
// deleting inline.
func WithDeletionQueue(queue repository.MediaQueueRepository, pending repository.PendingDeletionRepository) MediaOption {
	return func(m *mediaManager) {
		m.queue = queue
		m.pending = pending
	}
}

type mediaManager struct {
	storage repository.ObjectStorage
	queue   repository.MediaQueueRepository
	pending repository.PendingDeletionRepository
	policy  MediaPolicy
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewMediaManager creates a new MediaManager.
func NewMediaManager(
	storage repository.ObjectStorage,
	policy MediaPolicy,
	log *zap.Logger,
	m *metrics.Metrics,
	opts ...MediaOption,
) MediaManager {
	if policy.DedupeTTL <= 0 {
		policy.DedupeTTL = defaultDedupeTTL
	}
	mm := &mediaManager{
		storage: storage,
		policy:  policy,
		log:     log.Named("media"),
		metrics: m,
	}
	for _, opt := range opts {
		opt(mm)
	}
	return mm
}

func (m *mediaManager) IsReferenced(page *entity.Page, url string) bool {
	return page.References(url)
}

func (m *mediaManager) DeleteIfOrphaned(ctx context.Context, page *entity.Page, url string) {
	if m.policy.IsProtected(url) {
		m.metrics.IncMediaDeletion("skipped_protected")
		return
	}
	if m.IsReferenced(page, url) {
		m.metrics.IncMediaDeletion("skipped_referenced")
		return
	}
	m.remove(ctx, url)
}

func (m *mediaManager) Purge(ctx context.Context, url string) {
	if m.policy.IsProtected(url) {
		m.metrics.IncMediaDeletion("skipped_protected")
		return
	}
	m.remove(ctx, url)
}

func (m *mediaManager) remove(ctx context.Context, url string) {
	path, err := utils.StoragePathFromURL(url)
	if err != nil || path == "" {
		m.log.Warn("Cannot derive storage path from media URL", zap.String("url", url), zap.Error(err))
		m.metrics.IncMediaDeletion("failed")
		return
	}

	if m.queue != nil {
		m.enqueue(ctx, path)
		return
	}

	if err := m.storage.Delete(ctx, path); err != nil {
		m.log.Warn("Failed to delete media file", zap.String("path", path), zap.Error(err))
		m.metrics.IncMediaDeletion("failed")
		return
	}
	m.log.Debug("Deleted media file", zap.String("path", path))
	m.metrics.IncMediaDeletion("deleted")
}

func (m *mediaManager) enqueue(ctx context.Context, path string) {
	pending, err := m.pending.IsPending(ctx, path)
	if err != nil {
		m.log.Warn("Failed to check pending media deletion, queueing anyway", zap.String("path", path), zap.Error(err))
	}
	if pending {
		m.metrics.IncMediaDeletion("already_queued")
		return
	}

	if err := m.queue.Push(ctx, path); err != nil {
		m.log.Warn("Failed to queue media deletion", zap.String("path", path), zap.Error(err))
		m.metrics.IncMediaDeletion("failed")
		return
	}
	m.metrics.IncMediaDeletion("queued")

	if err := m.pending.MarkPending(ctx, path, m.policy.DedupeTTL); err != nil {
		// The path is queued but may be queued again before the worker gets to it.
		m.log.Error("Failed to mark media path as pending after queueing", zap.String("path", path), zap.Error(err))
	}
}
