package entity

import "time"

// PageHistory tracks a user's visits to one page.
type PageHistory struct {
	UID                string     `json:"uid"`
	UserUID            string     `json:"userUid"`
	PageUID            string     `json:"pageUid"`
	NumberOfVisits     int        `json:"numberOfVisits"`
	CreatedIso         time.Time  `json:"createdIso"`
	LastUpdateIso      time.Time  `json:"lastUpdateIso"`
	LastPagePublishIso *time.Time `json:"lastPagePublishIso,omitempty"`
}

// VisitResult classifies a visit against the stored history.
type VisitResult string

const (
	VisitCreatedNew  VisitResult = "createdNew"
	VisitUpdated     VisitResult = "updated"
	VisitPageChanged VisitResult = "pageChanged"
	VisitPageOwner   VisitResult = "pageOwner"
)

// TriggersRecording reports whether the visit should attribute page tags to the user.
func (r VisitResult) TriggersRecording() bool {
	return r == VisitCreatedNew || r == VisitPageChanged
}

// SamePublishInstant compares two optional publish timestamps.
func SamePublishInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
