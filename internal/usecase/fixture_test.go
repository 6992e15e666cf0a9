package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fullstack0516/express-digital-asset-backend/internal/adapter/memory"
	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/metrics"
)

const (
	testPlaceholder = "https://storage.example.com/dummy_photos/grey.png"
	testStorageBase = "https://storage.example.com/bucket"
	ownerUID        = "owner-1"
	visitorUID      = "visitor-1"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type stubExtractor struct {
	result   entity.Classification
	err      error
	calls    int
	lastHTML string
}

func (s *stubExtractor) ClassifyAndExtract(_ context.Context, html string) (entity.Classification, error) {
	s.calls++
	s.lastHTML = html
	return s.result, s.err
}

type fixture struct {
	ctx       context.Context
	clock     *fakeClock
	pages     *memory.PageRepoImpl
	history   *memory.PageHistoryRepoImpl
	tags      *memory.UserDataTagRepoImpl
	blacklist *memory.BlacklistRepoImpl
	storage   *memory.StorageImpl
	extractor *stubExtractor
	logs      *observer.ObservedLogs
	metrics   *metrics.Metrics

	media     MediaManager
	pageSvc   PageService
	sections  SectionStore
	publisher Publisher
	tracker   HistoryTracker
	ledger    Ledger
	visits    VisitRecorder
}

func newFixture(t *testing.T, opts ...MediaOption) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	f := &fixture{
		ctx:       context.Background(),
		clock:     &fakeClock{now: time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.UTC)},
		pages:     memory.NewPageRepo(),
		history:   memory.NewPageHistoryRepo(),
		tags:      memory.NewUserDataTagRepo(),
		blacklist: memory.NewBlacklistRepo(),
		storage:   memory.NewStorage(testStorageBase),
		extractor: &stubExtractor{},
		logs:      logs,
		metrics:   metrics.New(prometheus.NewRegistry()),
	}
	clock := Clock(f.clock.Now)
	policy := MediaPolicy{
		PlaceholderURL: testPlaceholder,
		DummyPhotoURLs: []string{"https://storage.example.com/bucket/dummy_profile.png"},
		ProtectedHosts: []string{"picsum.photos"},
	}

	f.media = NewMediaManager(f.storage, policy, log, f.metrics, opts...)
	f.pageSvc = NewPageService(f.pages, f.media, testPlaceholder, clock, log)
	f.sections = NewSectionStore(f.pages, f.media, testPlaceholder, 0, clock, log)
	f.publisher = NewPublisher(f.pages, f.extractor, f.media, clock, log, f.metrics)
	f.tracker = NewHistoryTracker(f.pages, f.history, clock, log)
	f.ledger = NewLedger(f.pages, f.tags, f.blacklist, 0, clock, log, f.metrics)
	f.visits = NewVisitRecorder(f.pageSvc, f.tracker, f.ledger, log, f.metrics)
	return f
}

func (f *fixture) createPage(t *testing.T) *entity.Page {
	t.Helper()
	page, err := f.pageSvc.CreatePage(f.ctx, "site-1", ownerUID)
	require.NoError(t, err)
	return page
}

// upload stores a file and returns its public URL.
func (f *fixture) upload(t *testing.T, name string) string {
	t.Helper()
	url, err := f.storage.Save(f.ctx, name, []byte("img"), "image/png")
	require.NoError(t, err)
	return url
}

func (f *fixture) reload(t *testing.T, uid string) *entity.Page {
	t.Helper()
	page, err := f.pages.Get(f.ctx, uid)
	require.NoError(t, err)
	return page
}

func (f *fixture) addSection(t *testing.T, pageUID string, st entity.SectionType) entity.ContentSection {
	t.Helper()
	_, s, err := f.sections.AddSection(f.ctx, pageUID, st, nil)
	require.NoError(t, err)
	return s
}

func (f *fixture) setText(t *testing.T, pageUID, sectionUID, text string) {
	t.Helper()
	_, _, err := f.sections.UpdateSection(f.ctx, pageUID, sectionUID, SectionPatch{NewText: &text})
	require.NoError(t, err)
}

func (f *fixture) setImage(t *testing.T, pageUID, sectionUID, url string, nth *int) {
	t.Helper()
	_, _, err := f.sections.UpdateSection(f.ctx, pageUID, sectionUID, SectionPatch{NewImageURL: url, NthImage: nth})
	require.NoError(t, err)
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func draftTypes(p *entity.Page) []entity.SectionType {
	out := make([]entity.SectionType, 0, len(p.ContentDraftSections))
	for _, s := range p.ContentDraftSections {
		out = append(out, s.Type())
	}
	return out
}
