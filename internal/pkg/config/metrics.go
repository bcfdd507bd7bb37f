package config

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConfigMetrics tracks configuration loading for one component.
// Metric names are prefixed with the component name, so each component
// must create its ConfigMetrics once.
type ConfigMetrics struct {
	// LoadTimestamp is the Unix time of the last load.
	LoadTimestamp prometheus.Gauge
	// FallbacksTotal counts defaults applied in place of invalid values, by field.
	FallbacksTotal *prometheus.CounterVec
	// FallbackActive is 1 while any field runs on a fallback.
	FallbackActive prometheus.Gauge
}

// NewConfigMetrics registers the configuration metrics of componentName.
func NewConfigMetrics(componentName string) *ConfigMetrics {
	return newConfigMetrics(promauto.With(prometheus.DefaultRegisterer), componentName)
}

// NewConfigMetricsWith registers the metrics on reg. Tests use a fresh registry.
func NewConfigMetricsWith(reg prometheus.Registerer, componentName string) *ConfigMetrics {
	return newConfigMetrics(promauto.With(reg), componentName)
}

func newConfigMetrics(factory promauto.Factory, componentName string) *ConfigMetrics {
	return &ConfigMetrics{
		LoadTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_load_timestamp", componentName),
			Help: fmt.Sprintf("Unix timestamp of last %s configuration load", componentName),
		}),
		FallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_fallbacks_total", componentName),
			Help: fmt.Sprintf("Total number of %s configuration fallbacks by field", componentName),
		}, []string{"field"}),
		FallbackActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_fallback_active", componentName),
			Help: fmt.Sprintf("1 if any %s configuration fallback is active, 0 otherwise", componentName),
		}),
	}
}

// RecordLoad marks a completed load and whether any fallback was applied.
func (m *ConfigMetrics) RecordLoad(fallbackActive bool) {
	m.LoadTimestamp.SetToCurrentTime()
	if fallbackActive {
		m.FallbackActive.Set(1)
	} else {
		m.FallbackActive.Set(0)
	}
}

// RecordFallback counts one fallback for field.
func (m *ConfigMetrics) RecordFallback(field string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
}
