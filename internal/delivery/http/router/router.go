package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fullstack0516/express-digital-asset-backend/internal/delivery/http/handler"
	"github.com/fullstack0516/express-digital-asset-backend/internal/delivery/http/middleware"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/metrics"
)

// New builds the chi router. gatherer backs the /metrics endpoint.
func New(h *handler.Handler, log *zap.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.Metrics(m))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/api/health", h.HandleHealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Post("/pages", h.HandleCreatePage)
		r.Route("/pages/{pageUid}", func(r chi.Router) {
			r.Delete("/", h.HandleDeletePage)
			r.Post("/sections", h.HandleAddSection)
			r.Post("/sections/reorder", h.HandleReorderSections)
			r.Patch("/sections/{sectionUid}", h.HandleUpdateSection)
			r.Delete("/sections/{sectionUid}", h.HandleDeleteSection)
			r.Post("/publish", h.HandlePublish)
			r.Post("/visits", h.HandleRecordVisit)
			r.Post("/impressions", h.HandleRecordImpression)
		})

		r.Get("/me/tags", h.HandleFetchTags)
		r.Get("/me/tags/count", h.HandleCountTags)
		r.Get("/me/blacklist", h.HandleListBlacklist)
		r.Post("/me/blacklist", h.HandleBlacklist)
		r.Delete("/me/blacklist/{category}", h.HandleUnblacklist)
	})

	return r
}
