package request

type CreatePageRequest struct {
	SiteUID string `json:"siteUid"`
}

type AddSectionRequest struct {
	Type  string `json:"type"`
	Index *int   `json:"index,omitempty"`
}

// UpdateSectionRequest carries a partial edit. Omitted fields are left unchanged.
type UpdateSectionRequest struct {
	NewText        *string `json:"newText,omitempty"`
	NewImageURL    string  `json:"newImageUrl,omitempty"`
	DeleteImage    bool    `json:"deleteImage,omitempty"`
	NewVideoURL    string  `json:"newVideoUrl,omitempty"`
	DeleteVideoURL bool    `json:"deleteVideoUrl,omitempty"`
	NthImage       *int    `json:"nthImage,omitempty"`
}

type ReorderSectionsRequest struct {
	FromIndex int `json:"fromIndex"`
	ToIndex   int `json:"toIndex"`
}

type BlacklistRequest struct {
	Category string `json:"category"`
}
