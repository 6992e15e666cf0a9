package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fullstack0516/express-digital-asset-backend/pkg/markdown"
)

// SectionType names one of the content block layouts a page can be built from.
type SectionType string

const (
	SectionHeader         SectionType = "header"
	SectionTextBlock      SectionType = "text-block"
	SectionTextImageLeft  SectionType = "text-image-left"
	SectionTextImageRight SectionType = "text-image-right"
	SectionImageRow       SectionType = "image-row"
	SectionTripleImageCol SectionType = "triple-image-col"
	SectionVideoRowEmbed  SectionType = "video-row-embed-only"
)

// ImageKindPhoto is the only image kind the editor produces.
const ImageKindPhoto = "photo"

var ErrUnknownSectionType = errors.New("unknown content section type")

// ParseSectionType validates a raw section type string.
func ParseSectionType(raw string) (SectionType, error) {
	switch t := SectionType(raw); t {
	case SectionHeader, SectionTextBlock, SectionTextImageLeft, SectionTextImageRight,
		SectionImageRow, SectionTripleImageCol, SectionVideoRowEmbed:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSectionType, raw)
}

// TextPair holds authored markdown next to its rendered HTML.
// Build it with NewTextPair so the two never drift apart.
type TextPair struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

func NewTextPair(md string) TextPair {
	return TextPair{Markdown: md, HTML: markdown.ToHTML(md)}
}

type Image struct {
	URL  string `json:"url"`
	Kind string `json:"type"`
}

// SectionContent is the payload of a ContentSection. The set of
// implementations is closed; switch on the concrete type.
type SectionContent interface {
	sectionType() SectionType
}

type HeaderContent struct{ Text TextPair }

type TextBlockContent struct{ Text TextPair }

type TextImageLeftContent struct {
	Text  TextPair
	Image Image
}

type TextImageRightContent struct {
	Text  TextPair
	Image Image
}

type ImageRowContent struct{ Image Image }

type TripleImageColContent struct{ Images [3]Image }

type VideoRowEmbedContent struct{ Link string }

func (HeaderContent) sectionType() SectionType         { return SectionHeader }
func (TextBlockContent) sectionType() SectionType      { return SectionTextBlock }
func (TextImageLeftContent) sectionType() SectionType  { return SectionTextImageLeft }
func (TextImageRightContent) sectionType() SectionType { return SectionTextImageRight }
func (ImageRowContent) sectionType() SectionType       { return SectionImageRow }
func (TripleImageColContent) sectionType() SectionType { return SectionTripleImageCol }
func (VideoRowEmbedContent) sectionType() SectionType  { return SectionVideoRowEmbed }

// ContentSection is one typed block of a page. Its type is derived from the
// concrete content it carries.
type ContentSection struct {
	UID     string
	Content SectionContent
}

// NewContentSection builds a section of the given type with an empty payload.
// Image slots start out pointing at placeholderURL.
func NewContentSection(uid string, t SectionType, placeholderURL string) (ContentSection, error) {
	placeholder := Image{URL: placeholderURL, Kind: ImageKindPhoto}
	var content SectionContent
	switch t {
	case SectionHeader:
		content = HeaderContent{}
	case SectionTextBlock:
		content = TextBlockContent{}
	case SectionTextImageLeft:
		content = TextImageLeftContent{Image: placeholder}
	case SectionTextImageRight:
		content = TextImageRightContent{Image: placeholder}
	case SectionImageRow:
		content = ImageRowContent{Image: placeholder}
	case SectionTripleImageCol:
		content = TripleImageColContent{Images: [3]Image{placeholder, placeholder, placeholder}}
	case SectionVideoRowEmbed:
		content = VideoRowEmbedContent{}
	default:
		return ContentSection{}, fmt.Errorf("%w: %q", ErrUnknownSectionType, t)
	}
	return ContentSection{UID: uid, Content: content}, nil
}

func (s ContentSection) Type() SectionType {
	if s.Content == nil {
		return ""
	}
	return s.Content.sectionType()
}

// ImageURLs lists every image slot of the section, in slot order.
func (s ContentSection) ImageURLs() []string {
	switch c := s.Content.(type) {
	case TextImageLeftContent:
		return []string{c.Image.URL}
	case TextImageRightContent:
		return []string{c.Image.URL}
	case ImageRowContent:
		return []string{c.Image.URL}
	case TripleImageColContent:
		return []string{c.Images[0].URL, c.Images[1].URL, c.Images[2].URL}
	}
	return nil
}

// HTML returns the rendered text of sections that carry prose.
func (s ContentSection) HTML() (string, bool) {
	switch c := s.Content.(type) {
	case HeaderContent:
		return c.Text.HTML, true
	case TextBlockContent:
		return c.Text.HTML, true
	case TextImageLeftContent:
		return c.Text.HTML, true
	case TextImageRightContent:
		return c.Text.HTML, true
	}
	return "", false
}

// SectionRecord is the flat storage and wire shape of a ContentSection.
type SectionRecord struct {
	UID     string        `json:"uid"`
	Type    SectionType   `json:"type"`
	Content RecordContent `json:"content"`
}

type RecordContent struct {
	Text   *TextPair `json:"text,omitempty"`
	Image  *Image    `json:"image,omitempty"`
	Images []Image   `json:"images,omitempty"`
	Link   *string   `json:"link,omitempty"`
}

func (s ContentSection) Record() SectionRecord {
	rec := SectionRecord{UID: s.UID, Type: s.Type()}
	switch c := s.Content.(type) {
	case HeaderContent:
		rec.Content.Text = &c.Text
	case TextBlockContent:
		rec.Content.Text = &c.Text
	case TextImageLeftContent:
		rec.Content.Text = &c.Text
		rec.Content.Image = &c.Image
	case TextImageRightContent:
		rec.Content.Text = &c.Text
		rec.Content.Image = &c.Image
	case ImageRowContent:
		rec.Content.Image = &c.Image
	case TripleImageColContent:
		rec.Content.Images = c.Images[:]
	case VideoRowEmbedContent:
		rec.Content.Link = &c.Link
	}
	return rec
}

// FromRecord rebuilds a section from its flat shape. A record whose type is
// unknown or whose payload does not fit its type is rejected.
func FromRecord(rec SectionRecord) (ContentSection, error) {
	t, err := ParseSectionType(string(rec.Type))
	if err != nil {
		return ContentSection{}, err
	}
	c := rec.Content
	text := func() TextPair {
		if c.Text == nil {
			return TextPair{}
		}
		return *c.Text
	}
	image := func() (Image, error) {
		if c.Image == nil {
			return Image{}, fmt.Errorf("section %s of type %s has no image", rec.UID, t)
		}
		return *c.Image, nil
	}

	var content SectionContent
	switch t {
	case SectionHeader:
		content = HeaderContent{Text: text()}
	case SectionTextBlock:
		content = TextBlockContent{Text: text()}
	case SectionTextImageLeft:
		img, err := image()
		if err != nil {
			return ContentSection{}, err
		}
		content = TextImageLeftContent{Text: text(), Image: img}
	case SectionTextImageRight:
		img, err := image()
		if err != nil {
			return ContentSection{}, err
		}
		content = TextImageRightContent{Text: text(), Image: img}
	case SectionImageRow:
		img, err := image()
		if err != nil {
			return ContentSection{}, err
		}
		content = ImageRowContent{Image: img}
	case SectionTripleImageCol:
		if len(c.Images) != 3 {
			return ContentSection{}, fmt.Errorf("section %s of type %s needs 3 images, got %d", rec.UID, t, len(c.Images))
		}
		content = TripleImageColContent{Images: [3]Image{c.Images[0], c.Images[1], c.Images[2]}}
	case SectionVideoRowEmbed:
		link := ""
		if c.Link != nil {
			link = *c.Link
		}
		content = VideoRowEmbedContent{Link: link}
	}
	return ContentSection{UID: rec.UID, Content: content}, nil
}

func (s ContentSection) MarshalJSON() ([]byte, error) {
	if s.Content == nil {
		return nil, fmt.Errorf("section %s has no content", s.UID)
	}
	return json.Marshal(s.Record())
}

func (s *ContentSection) UnmarshalJSON(data []byte) error {
	var rec SectionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	section, err := FromRecord(rec)
	if err != nil {
		return err
	}
	*s = section
	return nil
}
