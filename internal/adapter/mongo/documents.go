package mongo

import (
	"fmt"
	"time"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
)

const (
	pagesCollection     = "pages"
	historyCollection   = "pageHistory"
	userTagsCollection  = "userDataTags"
	blacklistCollection = "blacklistedCategories"
)

type textDoc struct {
	Markdown string `bson:"markdown"`
	HTML     string `bson:"html"`
}

type imageDoc struct {
	URL  string `bson:"url"`
	Kind string `bson:"type"`
}

type sectionContentDoc struct {
	Text   *textDoc   `bson:"text,omitempty"`
	Image  *imageDoc  `bson:"image,omitempty"`
	Images []imageDoc `bson:"images,omitempty"`
	Link   *string    `bson:"link,omitempty"`
}

type sectionDoc struct {
	UID     string            `bson:"uid"`
	Type    string            `bson:"type"`
	Content sectionContentDoc `bson:"content"`
}

type dataTagDoc struct {
	UID               string    `bson:"uid"`
	TagString         string    `bson:"tagString"`
	TagScore          float64   `bson:"tagScore"`
	ContentCategories []string  `bson:"contentCategories"`
	Count             int       `bson:"count"`
	TagCreatedIso     time.Time `bson:"tagCreatedIso"`
}

// pageDoc omits the counters; they are only written through $inc and on insert.
type pageDoc struct {
	UID                  string                `bson:"uid"`
	SiteUID              string                `bson:"siteUid"`
	PageOwner            string                `bson:"pageOwner"`
	ContentSections      []sectionDoc          `bson:"contentSections"`
	ContentDraftSections []sectionDoc          `bson:"contentDraftSections"`
	DataTags             map[string]dataTagDoc `bson:"dataTags"`
	ContentCategories    []string              `bson:"contentCategories"`
	IsPublished          bool                  `bson:"isPublished"`
	LastPublishIso       *time.Time            `bson:"lastPublishIso"`
	LastUpdateIso        time.Time             `bson:"lastUpdateIso"`
	CreatedIso           time.Time             `bson:"createdIso"`
	Likes                int64                 `bson:"likes"`
	NumberOfReports      int64                 `bson:"numberOfReports"`
	IsFlagged            bool                  `bson:"isFlagged"`
	IsBanned             bool                  `bson:"isBanned"`
	IsDeleted            bool                  `bson:"isDeleted"`
}

type storedPageDoc struct {
	Page             pageDoc `bson:",inline"`
	TotalVisits      int64   `bson:"totalVisits"`
	TotalImpressions int64   `bson:"totalImpressions"`
}

type historyDoc struct {
	UID                string     `bson:"uid"`
	UserUID            string     `bson:"userUid"`
	PageUID            string     `bson:"pageUid"`
	NumberOfVisits     int        `bson:"numberOfVisits"`
	CreatedIso         time.Time  `bson:"createdIso"`
	LastUpdateIso      time.Time  `bson:"lastUpdateIso"`
	LastPagePublishIso *time.Time `bson:"lastPagePublishIso"`
}

type userTagDoc struct {
	UID                   string    `bson:"uid"`
	UserUID               string    `bson:"userUid"`
	TagString             string    `bson:"tagString"`
	TagScore              float64   `bson:"tagScore"`
	ContentCategories     []string  `bson:"contentCategories"`
	Count                 int       `bson:"count"`
	TagCreatedIso         time.Time `bson:"tagCreatedIso"`
	TagRecordedForUserIso time.Time `bson:"tagRecordedForUserIso"`
}

type blacklistDoc struct {
	UserUID  string `bson:"userUid"`
	Category string `bson:"category"`
}

func toSectionDocs(sections []entity.ContentSection) []sectionDoc {
	docs := make([]sectionDoc, 0, len(sections))
	for _, s := range sections {
		rec := s.Record()
		d := sectionDoc{UID: rec.UID, Type: string(rec.Type)}
		if rec.Content.Text != nil {
			d.Content.Text = &textDoc{Markdown: rec.Content.Text.Markdown, HTML: rec.Content.Text.HTML}
		}
		if rec.Content.Image != nil {
			d.Content.Image = &imageDoc{URL: rec.Content.Image.URL, Kind: rec.Content.Image.Kind}
		}
		for _, img := range rec.Content.Images {
			d.Content.Images = append(d.Content.Images, imageDoc{URL: img.URL, Kind: img.Kind})
		}
		d.Content.Link = rec.Content.Link
		docs = append(docs, d)
	}
	return docs
}

func fromSectionDocs(docs []sectionDoc) ([]entity.ContentSection, error) {
	sections := make([]entity.ContentSection, 0, len(docs))
	for _, d := range docs {
		rec := entity.SectionRecord{UID: d.UID, Type: entity.SectionType(d.Type)}
		if d.Content.Text != nil {
			rec.Content.Text = &entity.TextPair{Markdown: d.Content.Text.Markdown, HTML: d.Content.Text.HTML}
		}
		if d.Content.Image != nil {
			rec.Content.Image = &entity.Image{URL: d.Content.Image.URL, Kind: d.Content.Image.Kind}
		}
		for _, img := range d.Content.Images {
			rec.Content.Images = append(rec.Content.Images, entity.Image{URL: img.URL, Kind: img.Kind})
		}
		rec.Content.Link = d.Content.Link
		s, err := entity.FromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", d.UID, err)
		}
		sections = append(sections, s)
	}
	return sections, nil
}

func toPageDoc(p *entity.Page) pageDoc {
	tags := make(map[string]dataTagDoc, len(p.DataTags))
	for k, t := range p.DataTags {
		tags[k] = dataTagDoc(t)
	}
	categories := p.ContentCategories
	if categories == nil {
		categories = []string{}
	}
	return pageDoc{
		UID:                  p.UID,
		SiteUID:              p.SiteUID,
		PageOwner:            p.PageOwner,
		ContentSections:      toSectionDocs(p.ContentSections),
		ContentDraftSections: toSectionDocs(p.ContentDraftSections),
		DataTags:             tags,
		ContentCategories:    categories,
		IsPublished:          p.IsPublished,
		LastPublishIso:       p.LastPublishIso,
		LastUpdateIso:        p.LastUpdateIso,
		CreatedIso:           p.CreatedIso,
		Likes:                p.Likes,
		NumberOfReports:      p.NumberOfReports,
		IsFlagged:            p.IsFlagged,
		IsBanned:             p.IsBanned,
		IsDeleted:            p.IsDeleted,
	}
}

func (s storedPageDoc) toEntity() (*entity.Page, error) {
	d := s.Page
	published, err := fromSectionDocs(d.ContentSections)
	if err != nil {
		return nil, err
	}
	draft, err := fromSectionDocs(d.ContentDraftSections)
	if err != nil {
		return nil, err
	}
	tags := make(map[string]entity.DataTag, len(d.DataTags))
	for k, t := range d.DataTags {
		tags[k] = entity.DataTag(t)
	}
	return &entity.Page{
		UID:                  d.UID,
		SiteUID:              d.SiteUID,
		PageOwner:            d.PageOwner,
		ContentSections:      published,
		ContentDraftSections: draft,
		DataTags:             tags,
		ContentCategories:    d.ContentCategories,
		IsPublished:          d.IsPublished,
		LastPublishIso:       utcPtr(d.LastPublishIso),
		LastUpdateIso:        d.LastUpdateIso.UTC(),
		CreatedIso:           d.CreatedIso.UTC(),
		TotalVisits:          s.TotalVisits,
		TotalImpressions:     s.TotalImpressions,
		Likes:                d.Likes,
		NumberOfReports:      d.NumberOfReports,
		IsFlagged:            d.IsFlagged,
		IsBanned:             d.IsBanned,
		IsDeleted:            d.IsDeleted,
	}, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
