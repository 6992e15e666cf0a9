package entity

import (
	"slices"
	"time"
)

// DataTag is a personalization signal derived from a page's published text.
type DataTag struct {
	UID               string    `json:"uid"`
	TagString         string    `json:"tagString"`
	TagScore          float64   `json:"tagScore"`
	ContentCategories []string  `json:"contentCategories"`
	Count             int       `json:"count"`
	TagCreatedIso     time.Time `json:"tagCreatedIso"`
}

// UserDataTag is a DataTag attributed to a user at a point in time.
// Rows are append-only and never merged.
type UserDataTag struct {
	UID                   string    `json:"uid"`
	UserUID               string    `json:"userUid"`
	TagString             string    `json:"tagString"`
	TagScore              float64   `json:"tagScore"`
	ContentCategories     []string  `json:"contentCategories"`
	Count                 int       `json:"count"`
	TagCreatedIso         time.Time `json:"tagCreatedIso"`
	TagRecordedForUserIso time.Time `json:"tagRecordedForUserIso"`
}

// HasAnyCategory reports whether the tag carries one of categories.
func (t UserDataTag) HasAnyCategory(categories []string) bool {
	return slices.ContainsFunc(t.ContentCategories, func(c string) bool {
		return slices.Contains(categories, c)
	})
}

type BlacklistedDataCategory struct {
	UserUID  string `json:"userUid"`
	Category string `json:"category"`
}

// Entity is a named thing the classifier found in a text.
type Entity struct {
	Name     string
	Salience float64
	Kind     string
}

// Entity kinds that never become data tags.
var ignoredEntityKinds = []string{"OTHER", "EVENT", "NUMBER"}

// Taggable reports whether e can become a data tag.
func (e Entity) Taggable() bool {
	return e.Salience > 0 && e.Name != "" && e.Kind != "" && !slices.Contains(ignoredEntityKinds, e.Kind)
}

// Classification is the output of a text classifier.
type Classification struct {
	Categories []string
	Entities   []Entity
}
