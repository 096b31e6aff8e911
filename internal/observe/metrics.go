// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

// Package observe exposes Prometheus metrics for requests sent to FileMaker Server.
package observe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/adrixdax/FMProKit2/internal/errs"
)

const namespace = "fmprokit"

// Metrics counts requests per method and records their latency. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests sent to FileMaker Server.",
		}, []string{"method"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_failed_total",
			Help:      "Requests that ended in an error, by error kind.",
		}, []string{"method", "kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Round-trip time of requests to FileMaker Server.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// Register adds the collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.requests, m.failures, m.duration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is Register that panics, for main.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.requests, m.failures, m.duration)
}

// Observe records one finished request.
func (m *Metrics) Observe(method string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
	if err != nil {
		m.failures.WithLabelValues(method, errs.KindOf(err).String()).Inc()
	}
}
