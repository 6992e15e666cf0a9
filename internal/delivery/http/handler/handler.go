package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/fullstack0516/express-digital-asset-backend/internal/delivery/http/response"
	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/usecase"
)

type Handler struct {
	pages     usecase.PageService
	sections  usecase.SectionStore
	publisher usecase.Publisher
	visits    usecase.VisitRecorder
	ledger    usecase.Ledger
	log       *zap.Logger
}

func NewHandler(
	pages usecase.PageService,
	sections usecase.SectionStore,
	publisher usecase.Publisher,
	visits usecase.VisitRecorder,
	ledger usecase.Ledger,
	log *zap.Logger,
) *Handler {
	return &Handler{
		pages:     pages,
		sections:  sections,
		publisher: publisher,
		visits:    visits,
		ledger:    ledger,
		log:       log,
	}
}

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{usecase.ErrNoPage, http.StatusNotFound, "no-page"},
	{usecase.ErrNoSite, http.StatusNotFound, "no-site"},
	{usecase.ErrNotSiteOwner, http.StatusForbidden, "not-site-owner"},
	{usecase.ErrUnknownContentSection, http.StatusNotFound, "unknown-content-section"},
	{usecase.ErrTooManySections, http.StatusUnprocessableEntity, "too-many-sections"},
	{usecase.ErrFirstNotHeader, http.StatusUnprocessableEntity, "first-not-header"},
	{usecase.ErrNoDataTags, http.StatusUnprocessableEntity, "no-data-tags"},
	{usecase.ErrUndefinedImagePosition, http.StatusBadRequest, "undefined-image-position"},
	{entity.ErrUnknownSectionType, http.StatusBadRequest, "unknown-section-type"},
	{usecase.ErrAlreadyBlacklisted, http.StatusConflict, "already-blacklisted"},
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSONError(w, "Invalid request body", "invalid-body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeError maps domain errors to status codes. Anything unknown is logged
// and reported as a 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			h.writeJSONError(w, m.err.Error(), m.code, m.status)
			return
		}
	}
	h.log.Error("Request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	h.writeJSONError(w, "Internal server error", "internal", http.StatusInternalServerError)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message, code string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Error: message, Code: code})
}
