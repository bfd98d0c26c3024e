// Package metrics records Prometheus counters and gauges for a calendar run.
//
// The pipeline runs once and exits, so metrics are not served over HTTP. When a
// textfile path is configured the registry is written in the text exposition format
// for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ufc_events"

// Page kinds
const (
	KindListing = "listing"
	KindDetail  = "detail"
)

// Results
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultDropped = "dropped"
)

// Metrics holds the collectors for one run on a private registry
type Metrics struct {
	registry *prometheus.Registry

	PagesFetched *prometheus.CounterVec
	Events       *prometheus.CounterVec
	Segments     *prometheus.CounterVec
	Bouts        prometheus.Counter
	RunDuration  prometheus.Gauge
	LastSuccess  prometheus.Gauge
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.PagesFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pages_fetched_total",
		Help:      "Pages retrieved by kind and result",
	}, []string{"kind", "result"})
	m.Events = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_total",
		Help:      "Event detail pages by extraction result",
	}, []string{"result"})
	m.Segments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "card_segments_total",
		Help:      "Card segments formatted by segment and result",
	}, []string{"segment", "result"})
	m.Bouts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bouts_rendered_total",
		Help:      "Bout lines rendered into fight notes",
	})
	m.RunDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Wall time of the last run",
	})
	m.LastSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last run that wrote a calendar",
	})

	m.registry.MustRegister(
		m.PagesFetched, m.Events, m.Segments, m.Bouts,
		m.RunDuration, m.LastSuccess,
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObservePage counts one page retrieval
func (m *Metrics) ObservePage(kind string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.PagesFetched.WithLabelValues(kind, result).Inc()
}

// ObserveRun records the run's wall time and, on success, the completion time
func (m *Metrics) ObserveRun(started time.Time, success bool) {
	now := time.Now()
	m.RunDuration.Set(now.Sub(started).Seconds())
	if success {
		m.LastSuccess.Set(float64(now.Unix()))
	}
}

// WriteTextfile writes the registry to path in the Prometheus text format
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
