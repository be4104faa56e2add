// Package observability provides Prometheus instrumentation for validation runs.
//
// Metrics are exposed on /metrics by the router. All operations are safe for
// concurrent use.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

const (
	metricsNamespace    = "frostbyte"
	validationSubsystem = "validation"
)

// Outcome label values.
const (
	OutcomePass = "pass"
	OutcomeFail = "fail"
)

// ValidationMetrics holds the counters and histograms for feasibility checks.
type ValidationMetrics struct {
	// RunsTotal counts completed checks.
	// Labels: check (temperature, network), outcome (pass, fail)
	RunsTotal *prometheus.CounterVec

	// ViolationsTotal counts reported violations.
	// Labels: code (MAX_CAPACITY_VIOLATION, ...)
	ViolationsTotal *prometheus.CounterVec

	// DurationSeconds measures check latency including store reads.
	// Labels: check
	DurationSeconds *prometheus.HistogramVec

	// SinkErrorsTotal counts report delivery failures.
	// Labels: sink (archive, sheet, alert)
	SinkErrorsTotal *prometheus.CounterVec
}

// NewValidationMetrics creates the metrics and registers them with reg.
// A nil reg registers with the default Prometheus registry.
func NewValidationMetrics(reg prometheus.Registerer) *ValidationMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &ValidationMetrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: validationSubsystem,
				Name:      "runs_total",
				Help:      "Completed feasibility checks by check and outcome",
			},
			[]string{"check", "outcome"},
		),
		ViolationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: validationSubsystem,
				Name:      "violations_total",
				Help:      "Feasibility violations by code",
			},
			[]string{"code"},
		),
		DurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: validationSubsystem,
				Name:      "duration_seconds",
				Help:      "Feasibility check duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"check"},
		),
		SinkErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: validationSubsystem,
				Name:      "sink_errors_total",
				Help:      "Validation report delivery failures by sink",
			},
			[]string{"sink"},
		),
	}
}

// ObserveValidation records one completed check.
func (m *ValidationMetrics) ObserveValidation(check string, ok bool, violations []models.Violation, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomePass
	if !ok {
		outcome = OutcomeFail
	}
	m.RunsTotal.WithLabelValues(check, outcome).Inc()
	m.DurationSeconds.WithLabelValues(check).Observe(elapsed.Seconds())
	for code, n := range models.CountByCode(violations) {
		m.ViolationsTotal.WithLabelValues(string(code)).Add(float64(n))
	}
}

// RecordSinkError counts a failed report delivery.
func (m *ValidationMetrics) RecordSinkError(sink string) {
	if m == nil {
		return
	}
	m.SinkErrorsTotal.WithLabelValues(sink).Inc()
}
