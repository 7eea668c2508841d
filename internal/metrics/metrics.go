// Package metrics holds the prometheus collectors of the analysis pipeline.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the pipeline collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	analyses  *prometheus.CounterVec
	duration  prometheus.Histogram
	fallbacks *prometheus.CounterVec
	grades    *prometheus.CounterVec
	dropped   *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resumelyze_analyses_total",
				Help: "Total number of completed analyses by mode",
			},
			[]string{"mode"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "resumelyze_analysis_duration_seconds",
				Help:    "Duration of one analysis in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resumelyze_fallbacks_total",
				Help: "Total number of degraded-capability fallbacks by component",
			},
			[]string{"component"},
		),
		grades: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resumelyze_grades_total",
				Help: "Total number of analyses by overall grade",
			},
			[]string{"grade"},
		),
		dropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resumelyze_rank_dropped_total",
				Help: "Total number of résumés dropped by ranking filters",
			},
			[]string{"filter"},
		),
	}
}

// ObserveAnalysis records one completed analysis.
func (m *Metrics) ObserveAnalysis(mode, grade string, d time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(mode).Inc()
	m.grades.WithLabelValues(grade).Inc()
	m.duration.Observe(d.Seconds())
}

// Fallback records that component degraded to its fallback path.
func (m *Metrics) Fallback(component string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(component).Inc()
}

// Dropped records n résumés removed by a ranking filter.
func (m *Metrics) Dropped(filter string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.dropped.WithLabelValues(filter).Add(float64(n))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteToTextfile writes all collected metrics in the node_exporter textfile format.
func (m *Metrics) WriteToTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %q: %w", path, err)
	}
	return nil
}
