package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for profile link resolution.
type Metrics struct {
	// Responses by client class and chosen action
	Responses *prometheus.CounterVec

	// Rejected path segments by reason
	Rejections *prometheus.CounterVec

	// Store lookup latency by outcome
	LookupLatency *prometheus.HistogramVec

	// Recovered panics in the request path
	Recovered prometheus.Counter
}

// New registers the profile link metrics on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Responses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gliblio_profilelink_responses_total",
			Help: "Profile link responses by client class and action",
		}, []string{"client_class", "action"}),

		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gliblio_profilelink_rejections_total",
			Help: "Path segments rejected as handles, by reason",
		}, []string{"reason"}),

		LookupLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gliblio_profilelink_lookup_duration_seconds",
			Help:    "Duration of profile store lookups by outcome",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"outcome"}), // outcome: "found", "not_found", "failed"

		Recovered: factory.NewCounter(prometheus.CounterOpts{
			Name: "gliblio_profilelink_recovered_panics_total",
			Help: "Panics recovered while serving profile links",
		}),
	}
}

// IncrementResponse records the action chosen for a client class.
func (m *Metrics) IncrementResponse(clientClass, action string) {
	if m != nil {
		m.Responses.WithLabelValues(clientClass, action).Inc()
	}
}

// IncrementRejection records a rejected segment.
func (m *Metrics) IncrementRejection(reason string) {
	if m != nil {
		m.Rejections.WithLabelValues(reason).Inc()
	}
}

// ObserveLookupLatency records the duration of one store lookup.
func (m *Metrics) ObserveLookupLatency(outcome string, d time.Duration) {
	if m != nil {
		m.LookupLatency.WithLabelValues(outcome).Observe(d.Seconds())
	}
}

// IncrementRecovered records a recovered panic.
func (m *Metrics) IncrementRecovered() {
	if m != nil {
		m.Recovered.Inc()
	}
}
