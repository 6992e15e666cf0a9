package response

import "github.com/fullstack0516/express-digital-asset-backend/internal/entity"

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type PageResponse struct {
	Page *entity.Page `json:"page"`
}

type SectionResponse struct {
	Page    *entity.Page         `json:"page"`
	Section entity.ContentSection `json:"section"`
}

type UpdatedSectionResponse struct {
	Page           *entity.Page         `json:"page"`
	UpdatedSection entity.ContentSection `json:"updatedSection"`
}

type VisitResponse struct {
	Result entity.VisitResult `json:"result"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type BlacklistResponse struct {
	Categories []entity.BlacklistedDataCategory `json:"categories"`
}
