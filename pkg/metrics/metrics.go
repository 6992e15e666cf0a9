package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	PublishesTotal     *prometheus.CounterVec
	DataTagsPerPublish prometheus.Histogram
	LedgerRecordsTotal *prometheus.CounterVec
	PageVisitsTotal    *prometheus.CounterVec
	MediaDeletions     *prometheus.CounterVec
	MediaInQueue       prometheus.Gauge
}

// New registers the metrics with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		PublishesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "page_publishes_total",
			Help: "Total number of page publishes.",
		}, []string{"outcome"}), // ok, extraction_failed
		DataTagsPerPublish: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "page_data_tags_extracted",
			Help:    "Number of data tags built per publish.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		}),
		LedgerRecordsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_user_tags_total",
			Help: "User data tags handled by the ledger.",
		}, []string{"outcome"}), // recorded, blacklisted
		PageVisitsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "page_visits_total",
			Help: "Page visits by history result.",
		}, []string{"result"}),
		MediaDeletions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "media_deletions_total",
			Help: "Orphaned media handling by outcome.",
		}, []string{"status"}), // deleted, queued, skipped_protected, skipped_referenced, failed
		MediaInQueue: f.NewGauge(prometheus.GaugeOpts{
			Name: "media_in_queue",
			Help: "Current number of storage paths waiting for deletion.",
		}),
	}
}

func (m *Metrics) IncPublish(outcome string) {
	m.PublishesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveDataTags(n int) {
	m.DataTagsPerPublish.Observe(float64(n))
}

func (m *Metrics) AddLedgerRecords(outcome string, n int) {
	m.LedgerRecordsTotal.WithLabelValues(outcome).Add(float64(n))
}

func (m *Metrics) IncVisit(result string) {
	m.PageVisitsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) IncMediaDeletion(status string) {
	m.MediaDeletions.WithLabelValues(status).Inc()
}
