package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestIngestMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewIngestMetrics(reg)

	metrics.ObserveRunDuration("COMPLETED", 250*time.Millisecond)
	metrics.IncRun("COMPLETED")
	metrics.IncOrder("inserted")
	metrics.IncOrder("inserted")
	metrics.IncOrder("skipped")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "ingest_orders_total", "outcome", "inserted"); err != nil {
		t.Fatalf("fetch inserted: %v", err)
	} else if got != 2 {
		t.Fatalf("expected inserted=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "ingest_orders_total", "outcome", "skipped"); err != nil {
		t.Fatalf("fetch skipped: %v", err)
	} else if got != 1 {
		t.Fatalf("expected skipped=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "ingest_runs_total", "status", "COMPLETED"); err != nil {
		t.Fatalf("fetch runs: %v", err)
	} else if got != 1 {
		t.Fatalf("expected runs=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "ingest_run_duration_seconds", "status", "COMPLETED"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestIngestMetricsNilReceiversAreSafe(t *testing.T) {
	var metrics *IngestMetrics
	metrics.IncOrder("inserted")
	metrics.IncRun("FAILED")
	metrics.ObserveRunDuration("FAILED", time.Second)

	empty := NewIngestMetrics(nil)
	empty.IncOrder("")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
