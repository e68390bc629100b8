package output

import (
	"fmt"

	"github.com/daryltucker/ei-reports/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "ei_reports"

// Metrics counts what a run produced. It lives in its own registry so a run
// can be exported as a node_exporter textfile without a server.
type Metrics struct {
	Registry       *prometheus.Registry
	Records        prometheus.Gauge
	Documents      *prometheus.CounterVec
	Charts         *prometheus.CounterVec
	RecordDuration prometheus.Histogram
}

// NewMetrics creates and registers the run metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "input_records",
			Help:      "Number of records in the input dataset.",
		}),
		Documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "documents_total",
			Help:      "Report documents by outcome.",
		}, []string{"status"}),
		Charts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "charts_total",
			Help:      "Per-record charts by kind and outcome.",
		}, []string{"kind", "status"}),
		RecordDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "record_duration_seconds",
			Help:      "Time to render, compose and write one report.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
	}
	m.Registry.MustRegister(m.Records, m.Documents, m.Charts, m.RecordDuration)
	return m
}

// Observe records one outcome.
func (m *Metrics) Observe(o model.Outcome) {
	m.Documents.WithLabelValues(o.Status()).Inc()
	for _, k := range o.Charts {
		m.Charts.WithLabelValues(string(k), "rendered").Inc()
	}
	for _, k := range o.Skipped {
		m.Charts.WithLabelValues(string(k), "skipped").Inc()
	}
	m.RecordDuration.Observe(o.Duration.Seconds())
}

// WriteTextfile exports the registry in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
