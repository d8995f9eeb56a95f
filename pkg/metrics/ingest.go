package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IngestMetrics records per-run and per-order ingestion outcomes.
type IngestMetrics struct {
	runDuration *prometheus.HistogramVec
	orders      *prometheus.CounterVec
	runs        *prometheus.CounterVec
}

// NewIngestMetrics registers the ingestion metrics on the provided registerer.
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	if reg == nil {
		return &IngestMetrics{}
	}
	runDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ingest_run_duration_seconds",
		Help:    "Duration of ingestion runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_orders_total",
		Help: "Orders processed by the committer, labeled by outcome.",
	}, []string{"outcome"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_runs_total",
		Help: "Ingestion runs started, labeled by final status.",
	}, []string{"status"})
	reg.MustRegister(runDuration, orders, runs)
	return &IngestMetrics{
		runDuration: runDuration,
		orders:      orders,
		runs:        runs,
	}
}

// ObserveRunDuration records how long a run took for the given final status.
func (m *IngestMetrics) ObserveRunDuration(status string, duration time.Duration) {
	if m == nil || m.runDuration == nil {
		return
	}
	m.runDuration.WithLabelValues(normalizeLabel(status)).Observe(duration.Seconds())
}

// IncOrder increments the order counter for the given outcome.
func (m *IngestMetrics) IncOrder(outcome string) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncRun increments the run counter for the given final status.
func (m *IngestMetrics) IncRun(status string) {
	if m == nil || m.runs == nil {
		return
	}
	m.runs.WithLabelValues(normalizeLabel(status)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
