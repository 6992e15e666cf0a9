package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fullstack0516/express-digital-asset-backend/internal/delivery/http/middleware"
	"github.com/fullstack0516/express-digital-asset-backend/internal/delivery/http/request"
	"github.com/fullstack0516/express-digital-asset-backend/internal/delivery/http/response"
)

// HandleFetchTags returns the caller's recent data tags grouped by category.
// fromIso defaults to now.
func (h *Handler) HandleFetchTags(w http.ResponseWriter, r *http.Request) {
	from := time.Now().UTC()
	if raw := r.URL.Query().Get("fromIso"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			h.writeJSONError(w, "fromIso must be an RFC 3339 timestamp", "invalid-from-iso", http.StatusBadRequest)
			return
		}
		from = parsed
	}
	groups, err := h.ledger.FetchForUser(r.Context(), middleware.UserUID(r.Context()), from, r.URL.Query().Get("category"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) HandleCountTags(w http.ResponseWriter, r *http.Request) {
	n, err := h.ledger.CountForUser(r.Context(), middleware.UserUID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.CountResponse{Count: n})
}

func (h *Handler) HandleListBlacklist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledger.ListBlacklisted(r.Context(), middleware.UserUID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.BlacklistResponse{Categories: entries})
}

func (h *Handler) HandleBlacklist(w http.ResponseWriter, r *http.Request) {
	var req request.BlacklistRequest
	if !h.decode(w, r, &req) {
		return
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		h.writeJSONError(w, "category is required", "invalid-category", http.StatusBadRequest)
		return
	}
	if err := h.ledger.BlacklistCategory(r.Context(), category, middleware.UserUID(r.Context())); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleUnblacklist(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if err := h.ledger.UnblacklistCategory(r.Context(), category, middleware.UserUID(r.Context())); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
