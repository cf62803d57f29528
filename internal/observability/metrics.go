package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the alarm
// aggregation and notification service.
type Metrics struct {
	ReportsIngested   prometheus.Counter
	RecordsNormalized prometheus.Counter
	RowsSkipped       prometheus.Counter

	IngestDuration prometheus.Histogram

	Notifications   *prometheus.CounterVec // label: outcome={sent,skipped,failed}
	RegistryUpserts *prometheus.CounterVec // label: outcome={success,failure}

	RecordsExported prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ReportsIngested,
		m.RecordsNormalized,
		m.RowsSkipped,
		m.IngestDuration,
		m.Notifications,
		m.RegistryUpserts,
		m.RecordsExported,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pulseforge",
			Name:      "reports_ingested_total",
			Help:      "Report pairs accepted for normalization.",
		}),
		RecordsNormalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pulseforge",
			Name:      "records_normalized_total",
			Help:      "Event records produced by the normalizer.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pulseforge",
			Name:      "rows_skipped_total",
			Help:      "Report rows dropped for missing site alias or zone.",
		}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pulseforge",
			Name:      "ingest_duration_seconds",
			Help:      "Duration of one report-pair extract and normalize cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pulseforge",
			Name:      "notifications_total",
			Help:      "Zone notification attempts by outcome.",
		}, []string{"outcome"}),
		RegistryUpserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pulseforge",
			Name:      "registry_upserts_total",
			Help:      "Zone registry upserts by outcome.",
		}, []string{"outcome"}),
		RecordsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pulseforge",
			Name:      "records_exported_total",
			Help:      "Normalized records published to the export topic.",
		}),
	}
}
