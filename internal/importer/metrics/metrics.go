package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the import module.
type Metrics struct {
	// Row outcomes by result: imported, duplicate, error
	RowOutcome *prometheus.CounterVec

	// Person match resolutions by tier
	MatchTier *prometheus.CounterVec

	// Full batch latency
	BatchLatency prometheus.Histogram

	// Batch sizes
	BatchSize prometheus.Histogram
}

// New creates a Metrics instance with all import module metrics registered.
func New() *Metrics {
	return &Metrics{
		RowOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docket_import_rows_total",
			Help: "Total import row outcomes by result",
		}, []string{"result"}), // result: "imported", "duplicate", "error"

		MatchTier: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docket_import_match_tier_total",
			Help: "Person match resolutions by tier",
		}, []string{"tier"}), // tier: "identifier", "exact", "similar", "created"

		BatchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "docket_import_batch_duration_seconds",
			Help:    "Duration of full batch imports",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "docket_import_batch_rows",
			Help:    "Rows per submitted batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),
	}
}

// IncrementRowOutcome records one row result.
func (m *Metrics) IncrementRowOutcome(result string) {
	if m != nil {
		m.RowOutcome.WithLabelValues(result).Inc()
	}
}

// IncrementMatchTier records how a person was resolved.
func (m *Metrics) IncrementMatchTier(tier string) {
	if m != nil {
		m.MatchTier.WithLabelValues(tier).Inc()
	}
}

// ObserveBatch records the size and duration of one batch.
func (m *Metrics) ObserveBatch(rows int, d time.Duration) {
	if m != nil {
		m.BatchSize.Observe(float64(rows))
		m.BatchLatency.Observe(d.Seconds())
	}
}
