package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a private registry so tests can build servers side by side.
type Metrics struct {
	registry *prometheus.Registry

	Requests  *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
	Answers   *prometheus.CounterVec
	Fallbacks prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "answers_total",
				Help:      "Answers served, by route",
			},
			[]string{"route"},
		),
		Fallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "answer_fallbacks_total",
				Help:      "Answers replaced by the fallback message",
			},
		),
	}

	m.registry.MustRegister(m.Requests, m.Duration, m.Answers, m.Fallbacks)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
