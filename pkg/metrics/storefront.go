package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes. Failed and empty reads render the same empty grid.
const (
	OutcomeOK     = "ok"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
)

// StorefrontMetrics records data-layer fetches and the grid/settings fallbacks.
type StorefrontMetrics struct {
	fetchDuration  *prometheus.HistogramVec
	fetchTotal     *prometheus.CounterVec
	settingsSource *prometheus.CounterVec
	staleResults   prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
// A nil registerer yields a recorder whose methods are no-ops.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	fetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_fetch_duration_seconds",
		Help:    "Duration of catalog and settings reads in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	fetchTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_fetch_total",
		Help: "Catalog and settings reads by outcome.",
	}, []string{"operation", "outcome"})
	settingsSource := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_settings_source_total",
		Help: "Site settings reads by the source that served them.",
	}, []string{"source"})
	staleResults := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_grid_stale_results_total",
		Help: "Grid page results discarded because the filters changed or the grid closed.",
	})
	reg.MustRegister(fetchDuration, fetchTotal, settingsSource, staleResults)
	return &StorefrontMetrics{
		fetchDuration:  fetchDuration,
		fetchTotal:     fetchTotal,
		settingsSource: settingsSource,
		staleResults:   staleResults,
	}
}

// ObserveFetch records one read of the named operation.
func (m *StorefrontMetrics) ObserveFetch(operation, outcome string, duration time.Duration) {
	if m == nil || m.fetchTotal == nil {
		return
	}
	operation = normalizeLabel(operation)
	m.fetchDuration.WithLabelValues(operation).Observe(duration.Seconds())
	m.fetchTotal.WithLabelValues(operation, normalizeLabel(outcome)).Inc()
}

// IncSettingsSource counts which source served the site settings.
func (m *StorefrontMetrics) IncSettingsSource(source string) {
	if m == nil || m.settingsSource == nil {
		return
	}
	m.settingsSource.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncStaleResult counts a discarded grid fetch.
func (m *StorefrontMetrics) IncStaleResult() {
	if m == nil || m.staleResults == nil {
		return
	}
	m.staleResults.Inc()
}

// OutcomeFor classifies a read by its error and result size.
func OutcomeFor(err error, size int) string {
	switch {
	case err != nil:
		return OutcomeFailed
	case size == 0:
		return OutcomeEmpty
	default:
		return OutcomeOK
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
