package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/utils"
)

func TestPageRepoCopiesDocuments(t *testing.T) {
	ctx := context.Background()
	repo := NewPageRepo()
	page := &entity.Page{UID: "p1", ContentCategories: []string{"Travel"}}
	require.NoError(t, repo.Create(ctx, page))

	page.ContentCategories[0] = "Food"
	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Travel"}, got.ContentCategories)

	require.NoError(t, repo.IncrementCounter(ctx, "p1", entity.CounterVisits, 1))
	require.NoError(t, repo.IncrementCounter(ctx, "p1", entity.CounterImpressions, 2))
	got, err = repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.TotalVisits)
	assert.EqualValues(t, 2, got.TotalImpressions)

	// A stale copy must not roll the counters back.
	page.TotalVisits = 0
	page.IsPublished = true
	require.NoError(t, repo.Save(ctx, page))
	got, err = repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
	assert.EqualValues(t, 1, got.TotalVisits)

	got.IsDeleted = true
	require.NoError(t, repo.Save(ctx, got))
	assert.ErrorIs(t, repo.IncrementCounter(ctx, "p1", entity.CounterVisits, 1), repository.ErrNotFound)
	got, err = repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.TotalVisits)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Save(ctx, &entity.Page{UID: "missing"}), repository.ErrNotFound)
}

func TestUserDataTagFindRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewUserDataTagRepo()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InsertMany(ctx, []entity.UserDataTag{
		{UID: "a", UserUID: "u", ContentCategories: []string{"Travel"}, TagRecordedForUserIso: base},
		{UID: "b", UserUID: "u", ContentCategories: []string{"Food"}, TagRecordedForUserIso: base.Add(time.Minute)},
		{UID: "c", UserUID: "u", ContentCategories: []string{"Travel"}, TagRecordedForUserIso: base.Add(2 * time.Minute)},
		{UID: "d", UserUID: "other", ContentCategories: []string{"Travel"}, TagRecordedForUserIso: base},
	}))

	got, err := repo.FindRecent(ctx, repository.UserDataTagQuery{UserUID: "u", RecordedAtOrBefore: base.Add(time.Minute), Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].UID)
	assert.Equal(t, "a", got[1].UID)

	got, err = repo.FindRecent(ctx, repository.UserDataTagQuery{UserUID: "u", RecordedAtOrBefore: base.Add(time.Hour), Category: "Travel", Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].UID)

	n, err := repo.DeleteByCategory(ctx, "u", "Travel")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	count, err := repo.CountForUser(ctx, "u")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestPendingRepoExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewPendingRepo()
	p.now = func() time.Time { return now }

	require.NoError(t, p.MarkPending(ctx, "a.png", time.Minute))
	pending, err := p.IsPending(ctx, "a.png")
	require.NoError(t, err)
	assert.True(t, pending)

	now = now.Add(2 * time.Minute)
	pending, err = p.IsPending(ctx, "a.png")
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestQueueIsFIFO(t *testing.T) {
	ctx := context.Background()
	q := NewQueueRepo()
	require.NoError(t, q.Push(ctx, "a"))
	require.NoError(t, q.Push(ctx, "b"))

	first, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", first)
	size, _ := q.Size(ctx)
	assert.EqualValues(t, 1, size)

	_, _ = q.Pop(ctx)
	_, err = q.Pop(ctx)
	assert.ErrorIs(t, err, repository.ErrQueueEmpty)
}

func TestStorageURLRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStorage("https://storage.example.com/bucket/")
	url, err := s.Save(ctx, "my photo.png", []byte("x"), "image/png")
	require.NoError(t, err)

	path, err := utils.StoragePathFromURL(url)
	require.NoError(t, err)
	assert.Equal(t, "my photo.png", path)

	require.NoError(t, s.Delete(ctx, path))
	assert.False(t, s.Has(path))
	assert.ErrorIs(t, s.Delete(ctx, path), repository.ErrNotFound)
}
