package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
)

func samplePage(t *testing.T) *entity.Page {
	t.Helper()
	published := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	header := entity.ContentSection{UID: "h", Content: entity.HeaderContent{Text: entity.NewTextPair("# Madeira")}}
	triple, err := entity.NewContentSection("t", entity.SectionTripleImageCol, "https://cdn.example.com/grey.png")
	require.NoError(t, err)
	video := entity.ContentSection{UID: "v", Content: entity.VideoRowEmbedContent{Link: "https://youtu.be/abc"}}

	return &entity.Page{
		UID:                  "page-1",
		SiteUID:              "site-1",
		PageOwner:            "owner-1",
		ContentSections:      []entity.ContentSection{header},
		ContentDraftSections: []entity.ContentSection{header, triple, video},
		DataTags: map[string]entity.DataTag{
			"Madeira": {UID: "tag-1", TagString: "Madeira", TagScore: 0.7, ContentCategories: []string{"Travel"}, Count: 1, TagCreatedIso: published},
		},
		ContentCategories: []string{"Travel"},
		IsPublished:       true,
		LastPublishIso:    &published,
		LastUpdateIso:     published,
		CreatedIso:        published.Add(-time.Hour),
		TotalVisits:       12,
		TotalImpressions:  40,
	}
}

func TestPageDocumentRoundTrip(t *testing.T) {
	page := samplePage(t)
	raw, err := bson.Marshal(storedPageDoc{Page: toPageDoc(page), TotalVisits: page.TotalVisits, TotalImpressions: page.TotalImpressions})
	require.NoError(t, err)

	var doc storedPageDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	got, err := doc.toEntity()
	require.NoError(t, err)

	assert.Equal(t, page.ContentDraftSections, got.ContentDraftSections)
	assert.Equal(t, page.ContentSections, got.ContentSections)
	assert.Equal(t, page.DataTags, got.DataTags)
	assert.True(t, page.LastPublishIso.Equal(*got.LastPublishIso))
	assert.EqualValues(t, 12, got.TotalVisits)
	assert.EqualValues(t, 40, got.TotalImpressions)
}

func TestSaveDocumentOmitsCounters(t *testing.T) {
	raw, err := bson.Marshal(toPageDoc(samplePage(t)))
	require.NoError(t, err)

	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "totalVisits")
	assert.NotContains(t, fields, "totalImpressions")
	assert.Contains(t, fields, "contentDraftSections")
}

func TestFromSectionDocsRejectsInvalid(t *testing.T) {
	_, err := fromSectionDocs([]sectionDoc{{UID: "x", Type: "image-row"}})
	assert.Error(t, err, "image-row without an image")

	_, err = fromSectionDocs([]sectionDoc{{UID: "y", Type: "carousel"}})
	assert.ErrorIs(t, err, entity.ErrUnknownSectionType)
}
