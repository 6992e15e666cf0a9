package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

func publishWith(t *testing.T, f *fixture, c entity.Classification) *entity.Page {
	t.Helper()
	page := f.createPage(t)
	f.extractor.result = c
	_, err := f.publisher.Publish(f.ctx, page.UID)
	require.NoError(t, err)
	return page
}

func tagNames(tags []entity.UserDataTag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.TagString)
	}
	return out
}

func TestRecordForUser(t *testing.T) {
	f := newFixture(t)
	page := publishWith(t, f, madeiraClassification())

	require.NoError(t, f.ledger.RecordForUser(f.ctx, page.UID, visitorUID))
	n, err := f.ledger.CountForUser(f.ctx, visitorUID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// Rows form a timeline; recording again appends.
	f.clock.Advance(time.Second)
	require.NoError(t, f.ledger.RecordForUser(f.ctx, page.UID, visitorUID))
	n, err = f.ledger.CountForUser(f.ctx, visitorUID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}

func TestRecordForUserWithoutTags(t *testing.T) {
	f := newFixture(t)
	page := publishWith(t, f, entity.Classification{})

	err := f.ledger.RecordForUser(f.ctx, page.UID, visitorUID)
	assert.ErrorIs(t, err, ErrNoDataTags)

	err = f.ledger.RecordForUser(f.ctx, "missing", visitorUID)
	assert.ErrorIs(t, err, ErrNoPage)
}

func TestRecordForUserSkipsBlacklisted(t *testing.T) {
	f := newFixture(t)
	page := publishWith(t, f, entity.Classification{
		Categories: []string{"/Travel"},
		Entities:   []entity.Entity{{Name: "Madeira", Salience: 0.5, Kind: "LOCATION"}},
	})
	require.NoError(t, f.ledger.BlacklistCategory(f.ctx, "Travel", visitorUID))

	require.NoError(t, f.ledger.RecordForUser(f.ctx, page.UID, visitorUID))
	n, err := f.ledger.CountForUser(f.ctx, visitorUID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFetchForUserGroupsByCategory(t *testing.T) {
	f := newFixture(t)
	page := publishWith(t, f, madeiraClassification())
	require.NoError(t, f.ledger.RecordForUser(f.ctx, page.UID, visitorUID))
	recordedAt := f.clock.Now()

	groups, err := f.ledger.FetchForUser(f.ctx, visitorUID, recordedAt, "")
	require.NoError(t, err)
	assert.Len(t, groups, 3)
	assert.ElementsMatch(t, []string{"Madeira", "Funchal"}, tagNames(groups["Travel"]))
	assert.ElementsMatch(t, []string{"Madeira", "Funchal"}, tagNames(groups["Hotels"]))

	groups, err = f.ledger.FetchForUser(f.ctx, visitorUID, recordedAt.Add(-time.Second), "")
	require.NoError(t, err)
	assert.Empty(t, groups, "rows recorded after fromIso are excluded")

	groups, err = f.ledger.FetchForUser(f.ctx, visitorUID, recordedAt, "Cooking")
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestFetchForUserLimit(t *testing.T) {
	f := newFixture(t)
	base := f.clock.Now()
	rows := make([]entity.UserDataTag, 0, 250)
	for i := 0; i < 250; i++ {
		rows = append(rows, entity.UserDataTag{
			UID:                   fmt.Sprintf("row-%d", i),
			UserUID:               visitorUID,
			TagString:             "tag",
			ContentCategories:     []string{"Travel"},
			TagRecordedForUserIso: base.Add(time.Duration(i) * time.Millisecond),
		})
	}
	require.NoError(t, f.tags.InsertMany(f.ctx, rows))

	groups, err := f.ledger.FetchForUser(f.ctx, visitorUID, base.Add(time.Hour), "Travel")
	require.NoError(t, err)
	require.Len(t, groups["Travel"], 200)
	assert.True(t, groups["Travel"][0].TagRecordedForUserIso.Equal(base.Add(249*time.Millisecond)), "newest first")
}

func TestBlacklistPurgesLedger(t *testing.T) {
	f := newFixture(t)
	travel := publishWith(t, f, madeiraClassification())
	food := publishWith(t, f, entity.Classification{
		Categories: []string{"/Food & Drink"},
		Entities:   []entity.Entity{{Name: "Bolo do caco", Salience: 0.4, Kind: "CONSUMER_GOOD"}},
	})
	require.NoError(t, f.ledger.RecordForUser(f.ctx, travel.UID, visitorUID))
	require.NoError(t, f.ledger.RecordForUser(f.ctx, food.UID, visitorUID))

	require.NoError(t, f.ledger.BlacklistCategory(f.ctx, "Travel", visitorUID))

	groups, err := f.ledger.FetchForUser(f.ctx, visitorUID, f.clock.Now(), "")
	require.NoError(t, err)
	for category, tags := range groups {
		for _, tag := range tags {
			assert.NotContains(t, tag.ContentCategories, "Travel", "category %s", category)
		}
	}
	assert.Equal(t, []string{"Bolo do caco"}, tagNames(groups["Food & Drink"]))

	err = f.ledger.BlacklistCategory(f.ctx, "Travel", visitorUID)
	assert.ErrorIs(t, err, ErrAlreadyBlacklisted)

	list, err := f.ledger.ListBlacklisted(f.ctx, visitorUID)
	require.NoError(t, err)
	assert.Equal(t, []entity.BlacklistedDataCategory{{UserUID: visitorUID, Category: "Travel"}}, list)
}

func TestUnblacklistKeepsPurgedData(t *testing.T) {
	f := newFixture(t)
	page := publishWith(t, f, madeiraClassification())
	require.NoError(t, f.ledger.RecordForUser(f.ctx, page.UID, visitorUID))
	require.NoError(t, f.ledger.BlacklistCategory(f.ctx, "Travel", visitorUID))
	require.NoError(t, f.ledger.UnblacklistCategory(f.ctx, "Travel", visitorUID))

	list, err := f.ledger.ListBlacklisted(f.ctx, visitorUID)
	require.NoError(t, err)
	assert.Empty(t, list)

	rows, err := f.tags.FindRecent(f.ctx, repository.UserDataTagQuery{UserUID: visitorUID, RecordedAtOrBefore: f.clock.Now()})
	require.NoError(t, err)
	assert.Empty(t, rows, "unblacklisting does not restore purged rows")

	require.NoError(t, f.ledger.RecordForUser(f.ctx, page.UID, visitorUID))
	n, err := f.ledger.CountForUser(f.ctx, visitorUID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
