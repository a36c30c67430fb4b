package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for the alert engine.
type Metrics struct {
	ReadingsGenerated *prometheus.CounterVec // labels: hazard
	AlertsCreated     *prometheus.CounterVec // labels: hazard, severity
	AlertsSuppressed  *prometheus.CounterVec // labels: hazard
	AlertCheckErrors  *prometheus.CounterVec // labels: hazard

	FeedSubscribers *prometheus.GaugeVec // labels: hazard

	PredictorRequests *prometheus.CounterVec // labels: outcome={success,error}
	PredictorDuration prometheus.Histogram
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ReadingsGenerated,
		m.AlertsCreated,
		m.AlertsSuppressed,
		m.AlertCheckErrors,
		m.FeedSubscribers,
		m.PredictorRequests,
		m.PredictorDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReadingsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_engine",
			Name:      "readings_generated_total",
			Help:      "Synthetic readings produced by the feed loops.",
		}, []string{"hazard"}),
		AlertsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_engine",
			Name:      "alerts_created_total",
			Help:      "Alerts inserted into the store.",
		}, []string{"hazard", "severity"}),
		AlertsSuppressed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_engine",
			Name:      "alerts_suppressed_total",
			Help:      "Alerts suppressed by the one-hour dedup window.",
		}, []string{"hazard"}),
		AlertCheckErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_engine",
			Name:      "alert_check_errors_total",
			Help:      "Alert-check failures absorbed by the feed loops.",
		}, []string{"hazard"}),
		FeedSubscribers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hazard_engine",
			Name:      "feed_subscribers",
			Help:      "Live-feed subscribers currently attached per hazard.",
		}, []string{"hazard"}),
		PredictorRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_engine",
			Name:      "predictor_requests_total",
			Help:      "External cyclone predictor calls by outcome.",
		}, []string{"outcome"}),
		PredictorDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hazard_engine",
			Name:      "predictor_duration_seconds",
			Help:      "External cyclone predictor request duration.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}
