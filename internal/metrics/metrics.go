// Package metrics collects per-run Prometheus metrics for registry requests and enrichment.
package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the run's collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	reg *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	OfficersSkipped prometheus.Counter
	DetailMisses    prometheus.Counter
	ResultsWritten  *prometheus.CounterVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_requests_total",
				Help: "Total number of registry API requests",
			},
			[]string{"op", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "registry_request_duration_seconds",
				Help:    "Duration of registry API requests in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"op"},
		),
		OfficersSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "enrich_officers_skipped_total",
			Help: "Officers dropped because their appointments could not be fetched",
		}),
		DetailMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "enrich_detail_misses_total",
			Help: "Company detail fetches replaced with the empty placeholder",
		}),
		ResultsWritten: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "output_results_total",
				Help: "Top-level results written per output mode",
			},
			[]string{"mode"},
		),
	}
}

// ObserveRequest records one registry request. It satisfies registry.Observer.
func (m *Metrics) ObserveRequest(op string, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(op, statusClass(statusCode)).Inc()
	m.RequestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// OfficerSkipped counts an officer dropped from the results.
func (m *Metrics) OfficerSkipped() {
	if m == nil {
		return
	}
	m.OfficersSkipped.Inc()
}

// DetailMissed counts a placeholder substitution.
func (m *Metrics) DetailMissed() {
	if m == nil {
		return
	}
	m.DetailMisses.Inc()
}

// Written counts results written for mode.
func (m *Metrics) Written(mode string, n int) {
	if m == nil {
		return
	}
	m.ResultsWritten.WithLabelValues(mode).Add(float64(n))
}

// WriteFile dumps the registry in the Prometheus text format.
func (m *Metrics) WriteFile(path string) error {
	if m == nil || strings.TrimSpace(path) == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}

func statusClass(code int) string {
	if code <= 0 {
		return "error"
	}
	return fmt.Sprintf("%dxx", code/100)
}
