package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mind-engage/brevet-cc/internal/grading"
)

// Metrics holds the Prometheus collectors for the grading service.
type Metrics struct {
	Classifications        *prometheus.CounterVec
	ClassificationDuration *prometheus.HistogramVec
	DocumentFailures       *prometheus.CounterVec
	GradeRequests          *prometheus.CounterVec
}

var (
	metricsOnce   sync.Once
	sharedMetrics *Metrics
)

// NewMetrics creates and registers the collectors on the default registry
// once per process.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		sharedMetrics = newMetrics(promauto.With(prometheus.DefaultRegisterer))
	})
	return sharedMetrics
}

// NewWithRegistry registers a fresh set of collectors on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	return newMetrics(promauto.With(reg))
}

func newMetrics(f promauto.Factory) *Metrics {
	return &Metrics{
		Classifications: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brevet_classifications_total",
				Help: "Documents classified, by resolving signal (color, symbol, none)",
			},
			[]string{"source"},
		),
		ClassificationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brevet_classification_duration_seconds",
				Help:    "Time spent rendering and scanning one document",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
			},
			[]string{"source"},
		),
		DocumentFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brevet_document_failures_total",
				Help: "Soft document failures, by stage (render, text)",
			},
			[]string{"stage"},
		),
		GradeRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brevet_grade_requests_total",
				Help: "Grade computations, by mode (pdf, manual) and outcome",
			},
			[]string{"mode", "outcome"},
		),
	}
}

func (m *Metrics) ObserveClassification(source grading.Source, elapsed time.Duration) {
	m.Classifications.WithLabelValues(string(source)).Inc()
	m.ClassificationDuration.WithLabelValues(string(source)).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveDocumentFailure(stage string) {
	m.DocumentFailures.WithLabelValues(stage).Inc()
}

// ObserveGrade counts one grade request. outcome is "graded", "no_result"
// or "invalid".
func (m *Metrics) ObserveGrade(mode, outcome string) {
	m.GradeRequests.WithLabelValues(mode, outcome).Inc()
}
