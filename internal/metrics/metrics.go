// Package metrics records Prometheus metrics for validation passes.
//
// Every Metrics value owns a private registry, so concurrent engines (and
// tests) never share counters.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mdcheck/internal/checks"
)

const namespace = "mdcheck"

type Metrics struct {
	registry *prometheus.Registry

	invocations  *prometheus.CounterVec
	issues       *prometheus.CounterVec
	defects      *prometheus.CounterVec
	checkTime    *prometheus.HistogramVec
	objects      prometheus.Counter
	passes       prometheus.Counter
	passDuration prometheus.Gauge
	lastExitCode prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "check_invocations_total",
				Help:      "Check invocations by check and result status",
			},
			[]string{"check", "status"},
		),
		issues: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "issues_total",
				Help:      "Issues reported by check and severity",
			},
			[]string{"check", "severity"},
		),
		defects: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "defects_total",
				Help:      "Check invocations that returned an error or panicked",
			},
			[]string{"check"},
		),
		checkTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "check_duration_seconds",
				Help:      "Time spent in one check invocation",
				Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
			},
			[]string{"check"},
		),
		objects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "objects_validated_total",
			Help:      "Top-level objects validated",
		}),
		passes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Validation passes run",
		}),
		passDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_pass_duration_seconds",
			Help:      "Wall time of the most recent validation pass",
		}),
		lastExitCode: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_pass_exit_code",
			Help:      "Exit code of the most recent validation pass",
		}),
	}
}

// Registry exposes the private registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveInvocation records one check invocation. A nil Metrics is a no-op.
func (m *Metrics) ObserveInvocation(res checks.Result, d time.Duration) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(res.CheckID, string(res.Status)).Inc()
	if res.Status == checks.StatusError {
		m.defects.WithLabelValues(res.CheckID).Inc()
	}
	for _, is := range res.Issues {
		m.issues.WithLabelValues(res.CheckID, string(is.Severity)).Inc()
	}
	if res.Status != checks.StatusSkipped {
		m.checkTime.WithLabelValues(res.CheckID).Observe(d.Seconds())
	}
}

func (m *Metrics) ObjectValidated() {
	if m == nil {
		return
	}
	m.objects.Inc()
}

// PassFinished records the end of a validation pass.
func (m *Metrics) PassFinished(d time.Duration, exitCode int) {
	if m == nil {
		return
	}
	m.passes.Inc()
	m.passDuration.Set(d.Seconds())
	m.lastExitCode.Set(float64(exitCode))
}

// WriteTextfile writes the current metrics in the Prometheus text format, for
// node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
