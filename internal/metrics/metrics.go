package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
	"github.com/MrSnakeDoc/langdocs/internal/validate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reload results
const (
	ReloadSuccess = "success"
	ReloadFailure = "failure"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langdocs_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "langdocs_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "route"},
	)

	ReloadCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langdocs_content_reloads_total",
			Help: "Content reloads by result",
		},
		[]string{"result"},
	)

	ContentEntries = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "langdocs_content_entries",
			Help: "Number of entries per language in the current snapshot",
		},
		[]string{"language"},
	)

	ContentDiagnostics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "langdocs_content_diagnostics",
			Help: "Validation diagnostics per language and severity",
		},
		[]string{"language", "severity"},
	)

	LastReload = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "langdocs_content_last_reload_timestamp_seconds",
			Help: "Unix time of the last successful content reload",
		},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "langdocs_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

var registerOnce sync.Once

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			ReloadCounter,
			ContentEntries,
			ContentDiagnostics,
			LastReload,
			RateLimited,
		)
	})
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one served HTTP request
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	RequestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordReload counts a reload attempt
func RecordReload(result string) {
	ReloadCounter.WithLabelValues(result).Inc()
}

// SetSnapshot replaces the content gauges with the figures of a new snapshot.
// reports must be index-aligned with languages.
func SetSnapshot(languages []domain.LanguageConfig, reports []validate.Report, at time.Time) {
	ContentEntries.Reset()
	ContentDiagnostics.Reset()

	for i, l := range languages {
		ContentEntries.WithLabelValues(l.ID).Set(float64(l.EntryCount()))
		if i < len(reports) {
			ContentDiagnostics.WithLabelValues(l.ID, string(validate.SeverityError)).Set(float64(len(reports[i].Errors())))
			ContentDiagnostics.WithLabelValues(l.ID, string(validate.SeverityWarning)).Set(float64(len(reports[i].Warnings())))
		}
	}

	LastReload.Set(float64(at.Unix()))
}
