package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for weather lookups.
type Metrics struct {
	Lookups        *prometheus.CounterVec // labels: outcome={success,validation_error,network_error,...}
	LookupDuration prometheus.Histogram

	// Upstream (Open-Meteo) metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: endpoint={geocoding,forecast}, outcome={success,error,empty}
	UpstreamDuration *prometheus.HistogramVec // labels: endpoint={geocoding,forecast}
	GeocodeCache     *prometheus.CounterVec   // labels: result={hit,miss}

	// Observation publishing metrics.
	PublishErrors  prometheus.Counter
	PublishEnabled prometheus.Gauge
}

// NewMetrics creates and registers all lookup metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_lookup",
			Name:      "lookups_total",
			Help:      "Weather lookups by outcome.",
		}, []string{"outcome"}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_lookup",
			Name:      "lookup_duration_seconds",
			Help:      "Duration of a complete geocode-then-forecast lookup.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_lookup",
			Name:      "upstream_requests_total",
			Help:      "Open-Meteo requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_lookup",
			Name:      "upstream_duration_seconds",
			Help:      "Open-Meteo request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"endpoint"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_lookup",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_lookup",
			Name:      "publish_errors_total",
			Help:      "Observations that failed to publish.",
		}),
		PublishEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_lookup",
			Name:      "publish_enabled",
			Help:      "1 when observation publishing is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.Lookups,
		m.LookupDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.GeocodeCache,
		m.PublishErrors,
		m.PublishEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Lookups:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_lookup", Name: "lookups_total"}, []string{"outcome"}),
		LookupDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_lookup", Name: "lookup_duration_seconds"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_lookup", Name: "upstream_requests_total"}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_lookup", Name: "upstream_duration_seconds"}, []string{"endpoint"}),
		GeocodeCache:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_lookup", Name: "geocode_cache_total"}, []string{"result"}),
		PublishErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_lookup", Name: "publish_errors_total"}),
		PublishEnabled:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_lookup", Name: "publish_enabled"}),
	}
}
