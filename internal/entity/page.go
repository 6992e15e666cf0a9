package entity

import (
	"slices"
	"time"
)

// Page is a site page with a draft and a published copy of its sections.
type Page struct {
	UID                  string             `json:"uid"`
	SiteUID              string             `json:"siteUid"`
	PageOwner            string             `json:"pageOwner"`
	ContentSections      []ContentSection   `json:"contentSections"`
	ContentDraftSections []ContentSection   `json:"contentDraftSections"`
	DataTags             map[string]DataTag `json:"dataTags"`
	ContentCategories    []string           `json:"contentCategories"`
	IsPublished          bool               `json:"isPublished"`
	LastPublishIso       *time.Time         `json:"lastPublishIso,omitempty"`
	LastUpdateIso        time.Time          `json:"lastUpdateIso"`
	CreatedIso           time.Time          `json:"createdIso"`
	TotalVisits          int64              `json:"totalVisits"`
	TotalImpressions     int64              `json:"totalImpressions"`
	Likes                int64              `json:"likes"`
	NumberOfReports      int64              `json:"numberOfReports"`
	IsFlagged            bool               `json:"isFlagged"`
	IsBanned             bool               `json:"isBanned"`
	IsDeleted            bool               `json:"isDeleted"`
}

// PageCounter names an atomically incremented page counter.
type PageCounter string

const (
	CounterVisits      PageCounter = "totalVisits"
	CounterImpressions PageCounter = "totalImpressions"
)

// Clone returns a copy that shares no slices or maps with p.
func (p *Page) Clone() *Page {
	c := *p
	c.ContentSections = slices.Clone(p.ContentSections)
	c.ContentDraftSections = slices.Clone(p.ContentDraftSections)
	c.ContentCategories = slices.Clone(p.ContentCategories)
	if p.DataTags != nil {
		c.DataTags = make(map[string]DataTag, len(p.DataTags))
		for k, v := range p.DataTags {
			v.ContentCategories = slices.Clone(v.ContentCategories)
			c.DataTags[k] = v
		}
	}
	if p.LastPublishIso != nil {
		t := *p.LastPublishIso
		c.LastPublishIso = &t
	}
	return &c
}

func (p *Page) DraftIndex(uid string) int {
	return sectionIndex(p.ContentDraftSections, uid)
}

func (p *Page) PublishedIndex(uid string) int {
	return sectionIndex(p.ContentSections, uid)
}

// InsertDraft places s at index, or appends when index is nil or out of range.
func (p *Page) InsertDraft(s ContentSection, index *int) {
	if index == nil || *index < 0 || *index > len(p.ContentDraftSections) {
		p.ContentDraftSections = append(p.ContentDraftSections, s)
		return
	}
	p.ContentDraftSections = slices.Insert(p.ContentDraftSections, *index, s)
}

// MoveDraft removes the section at from and inserts it at to.
func (p *Page) MoveDraft(from, to int) {
	s := p.ContentDraftSections[from]
	p.ContentDraftSections = slices.Delete(p.ContentDraftSections, from, from+1)
	p.ContentDraftSections = slices.Insert(p.ContentDraftSections, to, s)
}

// References reports whether url fills any image slot of either section list.
func (p *Page) References(url string) bool {
	for _, list := range [][]ContentSection{p.ContentDraftSections, p.ContentSections} {
		for _, s := range list {
			if slices.Contains(s.ImageURLs(), url) {
				return true
			}
		}
	}
	return false
}

// PublishedHTML concatenates the rendered prose of the published sections.
func (p *Page) PublishedHTML() string {
	var html string
	for _, s := range p.ContentSections {
		if h, ok := s.HTML(); ok {
			html += h
		}
	}
	return html
}

func sectionIndex(list []ContentSection, uid string) int {
	return slices.IndexFunc(list, func(s ContentSection) bool { return s.UID == uid })
}
