package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const grey = "https://storage.example.com/dummy_photos/grey.png"

func TestNewContentSectionDefaults(t *testing.T) {
	tests := []struct {
		typ    SectionType
		images []string
	}{
		{SectionHeader, nil},
		{SectionTextBlock, nil},
		{SectionTextImageLeft, []string{grey}},
		{SectionTextImageRight, []string{grey}},
		{SectionImageRow, []string{grey}},
		{SectionTripleImageCol, []string{grey, grey, grey}},
		{SectionVideoRowEmbed, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			s, err := NewContentSection("s1", tt.typ, grey)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, s.Type())
			assert.Equal(t, tt.images, s.ImageURLs())
		})
	}
}

func TestNewContentSectionUnknownType(t *testing.T) {
	_, err := NewContentSection("s1", SectionType("carousel"), grey)
	assert.ErrorIs(t, err, ErrUnknownSectionType)
}

func TestContentSectionJSON(t *testing.T) {
	link := ContentSection{UID: "v1", Content: VideoRowEmbedContent{}}
	raw, err := json.Marshal(link)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uid":"v1","type":"video-row-embed-only","content":{"link":""}}`, string(raw))

	triple := ContentSection{UID: "t1", Content: TripleImageColContent{Images: [3]Image{
		{URL: "a", Kind: ImageKindPhoto}, {URL: "b", Kind: ImageKindPhoto}, {URL: "c", Kind: ImageKindPhoto},
	}}}
	raw, err = json.Marshal(triple)
	require.NoError(t, err)

	var decoded ContentSection
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, triple, decoded)

	text := ContentSection{UID: "x1", Content: TextImageLeftContent{Text: NewTextPair("hi"), Image: Image{URL: "u", Kind: ImageKindPhoto}}}
	raw, err = json.Marshal(text)
	require.NoError(t, err)
	decoded = ContentSection{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, text, decoded)
}

func TestContentSectionJSONRejectsBadRecords(t *testing.T) {
	tests := map[string]string{
		"unknown type":        `{"uid":"a","type":"carousel","content":{}}`,
		"image row no image":  `{"uid":"a","type":"image-row","content":{}}`,
		"triple two images":   `{"uid":"a","type":"triple-image-col","content":{"images":[{"url":"a"},{"url":"b"}]}}`,
		"text left no image":  `{"uid":"a","type":"text-image-left","content":{"text":{"markdown":"","html":""}}}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			var s ContentSection
			assert.Error(t, json.Unmarshal([]byte(raw), &s))
		})
	}
}

func TestNewTextPairRendersHTML(t *testing.T) {
	p := NewTextPair("**Madeira**")
	assert.Equal(t, "**Madeira**", p.Markdown)
	assert.Contains(t, p.HTML, "<strong>Madeira</strong>")
}

func TestSectionHTMLOnlyForProse(t *testing.T) {
	header := ContentSection{Content: HeaderContent{Text: NewTextPair("title")}}
	_, ok := header.HTML()
	assert.True(t, ok)

	row := ContentSection{Content: ImageRowContent{}}
	_, ok = row.HTML()
	assert.False(t, ok)
}
