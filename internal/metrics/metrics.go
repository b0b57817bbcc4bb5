// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Acceptance outcomes
const (
	OutcomeAccepted        = "accepted"
	OutcomeAlreadyAccepted = "already_accepted"
	OutcomeNotEligible     = "not_eligible"
	OutcomeLostRace        = "lost_race"
)

// Metrics is safe to use through a nil pointer, which records nothing
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	acceptances  *prometheus.CounterVec
	inboxSize    prometheus.Histogram
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "favornet_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "favornet_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		acceptances: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "favornet_request_acceptances_total",
			Help: "Accept attempts by outcome.",
		}, []string{"outcome"}),
		inboxSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "favornet_inbox_requests",
			Help:    "Number of requests returned per inbox check.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
	}
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) Acceptance(outcome string) {
	if m == nil {
		return
	}
	m.acceptances.WithLabelValues(outcome).Inc()
}

func (m *Metrics) InboxSize(n int) {
	if m == nil {
		return
	}
	m.inboxSize.Observe(float64(n))
}

// Acceptances exposes the acceptance counter for inspection
func (m *Metrics) Acceptances() *prometheus.CounterVec {
	return m.acceptances
}
