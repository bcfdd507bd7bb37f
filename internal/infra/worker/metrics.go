package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fluxactu/internal/pkg/config"
)

// Metrics holds the scheduled refresh metrics.
type Metrics struct {
	*config.ConfigMetrics

	// RunsTotal counts scheduled refreshes by status (success, failure, skipped).
	RunsTotal *prometheus.CounterVec
	// RunDuration measures one refresh.
	RunDuration prometheus.Histogram
	// LastSuccess is the Unix time of the last successful refresh.
	LastSuccess prometheus.Gauge
}

// NewMetrics registers the refresh metrics on the default registerer.
// It must be called once per process.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers the refresh metrics on reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ConfigMetrics: config.NewConfigMetricsWith(reg, "refresh"),

		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "refresh_runs_total",
			Help: "Total number of scheduled refreshes by status",
		}, []string{"status"}),

		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "refresh_run_duration_seconds",
			Help:    "Duration of scheduled refreshes in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}),

		LastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "refresh_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled refresh",
		}),
	}
}

// RecordRun records one refresh outcome.
func (m *Metrics) RecordRun(status string, seconds float64) {
	m.RunsTotal.WithLabelValues(status).Inc()
	if status == StatusSkipped {
		return
	}
	m.RunDuration.Observe(seconds)
	if status == StatusSuccess {
		m.LastSuccess.SetToCurrentTime()
	}
}
