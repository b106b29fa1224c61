// Package metrics collects prometheus metrics for calls against the remote feedback service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the gateway reports each call to.
type Recorder interface {
	RecordCall(operation, outcome string, duration time.Duration)
	RecordAccessDenied(operation string)
}

// Collector is the prometheus implementation of Recorder.
type Collector struct {
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	accessDenied *prometheus.CounterVec
}

var _ Recorder = (*Collector)(nil)

// NewCollector registers the gateway metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedbackhub_gateway_requests_total",
			Help: "Calls to the remote feedback service by operation and outcome.",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feedbackhub_gateway_request_duration_seconds",
			Help:    "Latency of calls to the remote feedback service.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		accessDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedbackhub_gateway_access_denied_total",
			Help: "Admin-only calls refused locally before reaching the network.",
		}, []string{"operation"}),
	}

	reg.MustRegister(c.requests, c.latency, c.accessDenied)
	return c
}

// RecordCall counts one finished network call. outcome is "ok" or an error kind.
func (c *Collector) RecordCall(operation, outcome string, duration time.Duration) {
	c.requests.WithLabelValues(operation, outcome).Inc()
	c.latency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAccessDenied counts a call refused by the local role check.
func (c *Collector) RecordAccessDenied(operation string) {
	c.accessDenied.WithLabelValues(operation).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used by the CLI and tests that do not care.
type Nop struct{}

func (Nop) RecordCall(string, string, time.Duration) {}
func (Nop) RecordAccessDenied(string)                {}
