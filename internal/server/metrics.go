package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abhisek/lessonlens/internal/tension"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	tensions *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lessonlens",
			Name:      "requests_total",
			Help:      "Engine requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lessonlens",
			Name:      "request_duration_seconds",
			Help:      "Engine request latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"operation"}),
		tensions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lessonlens",
			Name:      "tensions_total",
			Help:      "Tensions reported by type and severity.",
		}, []string{"type", "severity"}),
	}
}

func (m *Metrics) observe(op, outcome string, seconds float64) {
	m.requests.WithLabelValues(op, outcome).Inc()
	m.latency.WithLabelValues(op).Observe(seconds)
}

func (m *Metrics) countTensions(ts []tension.Tension) {
	for _, t := range ts {
		m.tensions.WithLabelValues(string(t.Type), string(t.Severity)).Inc()
	}
}
