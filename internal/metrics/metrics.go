package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcomes.
const (
	OutcomeReady    = "ready"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
	OutcomeStale    = "stale"
	OutcomeSkipped  = "skipped"
)

// Collector provides widget metrics collection
type Collector struct {
	SearchesTotal    *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	UpstreamErrors   *prometheus.CounterVec
	ThemeChanges     *prometheus.CounterVec
}

// NewCollector registers the widget metrics on reg.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of weather pipeline runs by origin and outcome",
			},
			[]string{"origin", "outcome"},
		),

		UpstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream request duration in seconds by endpoint",
				Buckets:   []float64{0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"endpoint"},
		),

		UpstreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_errors_total",
				Help:      "Total number of failed upstream requests by endpoint",
			},
			[]string{"endpoint"},
		),

		ThemeChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "theme_changes_total",
				Help:      "Total number of applied themes by value",
			},
			[]string{"theme"},
		),
	}
}

func (c *Collector) RecordSearch(origin, outcome string) {
	c.SearchesTotal.WithLabelValues(origin, outcome).Inc()
}

// ObserveUpstream matches client.Observer.
func (c *Collector) ObserveUpstream(endpoint string, duration time.Duration, err error) {
	c.UpstreamDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	if err != nil {
		c.UpstreamErrors.WithLabelValues(endpoint).Inc()
	}
}

func (c *Collector) RecordThemeChange(theme string) {
	c.ThemeChanges.WithLabelValues(theme).Inc()
}
