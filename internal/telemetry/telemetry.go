// Package telemetry exposes Prometheus collectors for dashboard load cycles.
package telemetry

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
	"github.com/idlab-discover/fraudboard-cli/internal/repository"
	"github.com/idlab-discover/fraudboard-cli/internal/results"
)

const namespace = "fraudboard"

// Collectors groups the load-cycle metrics. Use New for an isolated set (tests)
// or Default for the process-wide one.
type Collectors struct {
	cycles          *prometheus.CounterVec
	cycleSeconds    prometheus.Histogram
	fetchFailures   *prometheus.CounterVec
	transformErrors *prometheus.CounterVec
	superseded      prometheus.Counter
}

// New creates an unregistered set of collectors.
func New() *Collectors {
	return &Collectors{
		cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "load_cycles_total",
				Help:      "Completed load cycles, partitioned by resulting status.",
			},
			[]string{"status"},
		),
		cycleSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "load_cycle_seconds",
				Help:      "Load cycle latency in seconds.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),
		fetchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "artifact_fetch_failures_total",
				Help:      "Repository failures, partitioned by failing artifact and kind.",
			},
			[]string{"artifact", "kind"},
		),
		transformErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transform_errors_total",
				Help:      "Curve transform failures, partitioned by kind.",
			},
			[]string{"kind"},
		),
		superseded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "superseded_cycles_total",
				Help:      "Load cycles whose result was discarded because a newer cycle started.",
			},
		),
	}
}

// Default is the process-wide collector set.
var Default = New()

// Register attaches the collectors to the supplied Prometheus registerer.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		c.cycles,
		c.cycleSeconds,
		c.fetchFailures,
		c.transformErrors,
		c.superseded,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// Observe records one finished cycle. It has the dashboard.Observer signature.
func (c *Collectors) Observe(r dashboard.Report) {
	c.cycles.WithLabelValues(string(r.Status)).Inc()
	d := r.Duration
	if d < 0 {
		d = 0
	}
	c.cycleSeconds.Observe(d.Seconds())
	if r.Superseded {
		c.superseded.Inc()
	}

	var re *repository.RepositoryError
	var te *results.TransformError
	switch {
	case errors.As(r.Err, &re):
		artifact := re.Artifact
		if artifact == "" {
			artifact = "both"
		}
		c.fetchFailures.WithLabelValues(artifact, re.Kind.String()).Inc()
	case errors.As(r.Err, &te):
		c.transformErrors.WithLabelValues(te.Kind.String()).Inc()
	}
}

// Register attaches the process-wide collectors to reg.
func Register(reg prometheus.Registerer) error { return Default.Register(reg) }

// Observer returns a dashboard.Observer feeding the process-wide collectors.
func Observer() dashboard.Observer { return Default.Observe }
