// Package metrics holds the import run counters. They are registered on the
// default registry and written once per run as a node-exporter textfile.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Row outcomes.
const (
	OutcomeImported = "imported"
	OutcomeSkipped  = "skipped"
	OutcomeError    = "error"
	OutcomeWarning  = "warning"
)

type metrics struct {
	rowsTotal        *prometheus.CounterVec
	importerDuration *prometheus.HistogramVec
	importerFailed   *prometheus.GaugeVec
	tracked          *prometheus.GaugeVec
	lastRun          prometheus.Gauge
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		rowsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "legacy_import",
			Name:      "rows_total",
			Help:      "Legacy rows examined, by importer and outcome.",
		}, []string{"importer", "outcome"}),
		importerDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "legacy_import",
			Name:      "importer_duration_seconds",
			Help:      "Wall time of one importer run.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800, 3600},
		}, []string{"importer"}),
		importerFailed: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "legacy_import",
			Name:      "importer_failed",
			Help:      "Whether the importer finished with errors (1/0).",
		}, []string{"importer"}),
		tracked: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "legacy_import",
			Name:      "tracked_entities",
			Help:      "Entities known to the tracker at run end, by kind.",
		}, []string{"kind"}),
		lastRun: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "legacy_import",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}

func ObserveRow(importer, outcome string) {
	getMetrics().rowsTotal.WithLabelValues(importer, outcome).Inc()
}

func ObserveImporter(importer string, d time.Duration, failed bool) {
	m := getMetrics()
	m.importerDuration.WithLabelValues(importer).Observe(d.Seconds())
	v := 0.0
	if failed {
		v = 1
	}
	m.importerFailed.WithLabelValues(importer).Set(v)
}

func SetTracked(kind string, n int) {
	getMetrics().tracked.WithLabelValues(kind).Set(float64(n))
}

// WriteTextfile stamps the run end time and writes the default registry to
// path in the text exposition format.
func WriteTextfile(path string, finished time.Time) error {
	getMetrics().lastRun.Set(float64(finished.Unix()))
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
