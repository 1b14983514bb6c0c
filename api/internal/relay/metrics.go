package relay

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts invocations by outcome and times upstream calls.
// A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  prometheus.Histogram
}

// NewMetrics builds the collectors and registers them on reg when non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gemini_proxy_requests_total",
				Help: "Relay invocations by outcome (ok, preflight, or failure kind)",
			},
			[]string{"outcome"},
		),
		latency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gemini_proxy_upstream_duration_seconds",
				Help:    "Latency of generateContent calls",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.latency)
	}
	return m
}

func (m *Metrics) request(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) upstream(d time.Duration) {
	if m == nil {
		return
	}
	m.latency.Observe(d.Seconds())
}
