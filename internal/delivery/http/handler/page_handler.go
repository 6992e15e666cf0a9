package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fullstack0516/express-digital-asset-backend/internal/delivery/http/middleware"
	"github.com/fullstack0516/express-digital-asset-backend/internal/delivery/http/request"
	"github.com/fullstack0516/express-digital-asset-backend/internal/delivery/http/response"
	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/usecase"
)

// ownedPage resolves the page uid and checks the caller owns it.
func (h *Handler) ownedPage(w http.ResponseWriter, r *http.Request) (string, bool) {
	pageUID := chi.URLParam(r, "pageUid")
	if err := h.pages.EnsurePageOwner(r.Context(), pageUID, middleware.UserUID(r.Context())); err != nil {
		h.writeError(w, r, err)
		return "", false
	}
	return pageUID, true
}

func (h *Handler) HandleCreatePage(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePageRequest
	if !h.decode(w, r, &req) {
		return
	}
	page, err := h.pages.CreatePage(r.Context(), req.SiteUID, middleware.UserUID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, response.PageResponse{Page: page})
}

func (h *Handler) HandleDeletePage(w http.ResponseWriter, r *http.Request) {
	pageUID, ok := h.ownedPage(w, r)
	if !ok {
		return
	}
	if err := h.pages.DeletePage(r.Context(), pageUID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleAddSection(w http.ResponseWriter, r *http.Request) {
	pageUID, ok := h.ownedPage(w, r)
	if !ok {
		return
	}
	var req request.AddSectionRequest
	if !h.decode(w, r, &req) {
		return
	}
	sectionType, err := entity.ParseSectionType(req.Type)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	page, section, err := h.sections.AddSection(r.Context(), pageUID, sectionType, req.Index)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, response.SectionResponse{Page: page, Section: section})
}

func (h *Handler) HandleUpdateSection(w http.ResponseWriter, r *http.Request) {
	pageUID, ok := h.ownedPage(w, r)
	if !ok {
		return
	}
	var req request.UpdateSectionRequest
	if !h.decode(w, r, &req) {
		return
	}
	page, section, err := h.sections.UpdateSection(r.Context(), pageUID, chi.URLParam(r, "sectionUid"), usecase.SectionPatch{
		NewText:        req.NewText,
		NewImageURL:    req.NewImageURL,
		DeleteImage:    req.DeleteImage,
		NewVideoURL:    req.NewVideoURL,
		DeleteVideoURL: req.DeleteVideoURL,
		NthImage:       req.NthImage,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.UpdatedSectionResponse{Page: page, UpdatedSection: section})
}

func (h *Handler) HandleDeleteSection(w http.ResponseWriter, r *http.Request) {
	pageUID, ok := h.ownedPage(w, r)
	if !ok {
		return
	}
	page, err := h.sections.DeleteSection(r.Context(), pageUID, chi.URLParam(r, "sectionUid"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.PageResponse{Page: page})
}

func (h *Handler) HandleReorderSections(w http.ResponseWriter, r *http.Request) {
	pageUID, ok := h.ownedPage(w, r)
	if !ok {
		return
	}
	var req request.ReorderSectionsRequest
	if !h.decode(w, r, &req) {
		return
	}
	page, err := h.sections.ReorderSections(r.Context(), pageUID, req.FromIndex, req.ToIndex)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.PageResponse{Page: page})
}

func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	pageUID, ok := h.ownedPage(w, r)
	if !ok {
		return
	}
	page, err := h.publisher.Publish(r.Context(), pageUID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.PageResponse{Page: page})
}

func (h *Handler) HandleRecordVisit(w http.ResponseWriter, r *http.Request) {
	result, err := h.visits.RecordVisit(r.Context(), chi.URLParam(r, "pageUid"), middleware.UserUID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.VisitResponse{Result: result})
}

func (h *Handler) HandleRecordImpression(w http.ResponseWriter, r *http.Request) {
	if err := h.pages.RecordImpression(r.Context(), chi.URLParam(r, "pageUid")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
