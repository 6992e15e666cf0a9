package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullstack0516/express-digital-asset-backend/internal/adapter/memory"
	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
)

func TestMediaPolicyIsProtected(t *testing.T) {
	p := MediaPolicy{
		PlaceholderURL: testPlaceholder,
		DummyPhotoURLs: []string{"https://cdn.example.com/dummy_1.png"},
		ProtectedHosts: []string{"picsum.photos"},
	}
	tests := []struct {
		url  string
		want bool
	}{
		{testPlaceholder, true},
		{"https://cdn.example.com/dummy_1.png", true},
		{"https://picsum.photos/200/300", true},
		{"https://fastly.picsum.photos/id/1/200.jpg", true},
		{"", true},
		{"https://storage.example.com/bucket/upload.png", false},
		{"https://notpicsum.photos.example.com/a.png", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.IsProtected(tt.url), tt.url)
	}
}

func TestDeleteIfOrphaned(t *testing.T) {
	f := newFixture(t)
	kept := f.upload(t, "kept.png")
	orphan := f.upload(t, "orphan.png")
	page := &entity.Page{ContentSections: []entity.ContentSection{
		{UID: "s", Content: entity.ImageRowContent{Image: entity.Image{URL: kept}}},
	}}

	assert.True(t, f.media.IsReferenced(page, kept))
	assert.False(t, f.media.IsReferenced(page, orphan))

	f.media.DeleteIfOrphaned(f.ctx, page, kept)
	f.media.DeleteIfOrphaned(f.ctx, page, orphan)
	f.media.DeleteIfOrphaned(f.ctx, page, "https://picsum.photos/10")

	assert.True(t, f.storage.Has("kept.png"))
	assert.False(t, f.storage.Has("orphan.png"))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MediaDeletions.WithLabelValues("skipped_referenced")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MediaDeletions.WithLabelValues("skipped_protected")))
}

func TestDeleteIfOrphanedLogsStorageFailure(t *testing.T) {
	f := newFixture(t)
	page := &entity.Page{}

	// Nothing stored at this path, so the delete fails and is only logged.
	assert.NotPanics(t, func() {
		f.media.DeleteIfOrphaned(f.ctx, page, "https://storage.example.com/bucket/never-uploaded.png")
	})
	assert.Equal(t, 1, f.logs.FilterMessage("Failed to delete media file").Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MediaDeletions.WithLabelValues("failed")))
}

func TestQueuedDeletion(t *testing.T) {
	queue := memory.NewQueueRepo()
	pending := memory.NewPendingRepo()
	f := newFixture(t, WithDeletionQueue(queue, pending))
	url := f.upload(t, "queued.png")
	page := &entity.Page{}

	f.media.DeleteIfOrphaned(f.ctx, page, url)
	f.media.DeleteIfOrphaned(f.ctx, page, url)

	size, err := queue.Size(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, size, "second request is deduplicated")
	assert.True(t, f.storage.Has("queued.png"), "deletion waits for the worker")

	cleanup := NewMediaCleanup(queue, pending, f.storage, zapNop(), f.metrics)
	processed, err := cleanup.ProcessNext(f.ctx)
	require.NoError(t, err)
	assert.True(t, processed)
	assert.False(t, f.storage.Has("queued.png"))

	stillPending, err := pending.IsPending(f.ctx, "queued.png")
	require.NoError(t, err)
	assert.False(t, stillPending)

	processed, err = cleanup.ProcessNext(f.ctx)
	require.NoError(t, err)
	assert.False(t, processed)
}

type failingQueue struct{ memory.QueueRepoImpl }

func (q *failingQueue) Pop(context.Context) (string, error) {
	return "", errors.New("connection refused")
}

func TestMediaCleanupPopFailure(t *testing.T) {
	f := newFixture(t)
	cleanup := NewMediaCleanup(&failingQueue{}, memory.NewPendingRepo(), f.storage, zapNop(), f.metrics)
	_, err := cleanup.ProcessNext(f.ctx)
	assert.Error(t, err)
}

func TestMediaCleanupRunDrainsUntilCancelled(t *testing.T) {
	queue := memory.NewQueueRepo()
	pending := memory.NewPendingRepo()
	f := newFixture(t, WithDeletionQueue(queue, pending))
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		f.media.DeleteIfOrphaned(f.ctx, &entity.Page{}, f.upload(t, name))
	}

	ctx, cancel := context.WithCancel(f.ctx)
	done := make(chan error, 1)
	go func() {
		done <- NewMediaCleanup(queue, pending, f.storage, zapNop(), f.metrics).Run(ctx, 5*time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		return len(f.storage.Deleted()) == 3
	}, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, f.storage.Deleted())
}
