// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

// Package metrics exposes Prometheus counters for the event pipeline:
// what was emitted, what policy suppressed, what was blocked, and what the
// sink failed to deliver.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsEmitted counts security events written to the sink.
	EventsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatelog_events_emitted_total",
			Help: "Total number of security events written to the log sink",
		},
		[]string{"category", "severity"},
	)

	// EventsSuppressed counts events the classifier declined to emit.
	// Reasons: "policy" (flag off), "pingback_registered" (fault 48),
	// "comment_missing" (record deleted before lookup).
	EventsSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatelog_events_suppressed_total",
			Help: "Total number of events suppressed before emission",
		},
		[]string{"reason"},
	)

	// RequestsBlocked counts requests terminated with HTTP 403.
	RequestsBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatelog_requests_blocked_total",
			Help: "Total number of requests terminated after a hard-block event",
		},
		[]string{"category"},
	)

	// SinkWriteFailures counts lines dropped because the system log was
	// unreachable. Drops are silent toward the host request flow.
	SinkWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gatelog_sink_write_failures_total",
			Help: "Total number of log lines dropped due to sink failures",
		},
	)

	// MulticallDetections counts requests with more than one XML-RPC
	// authentication failure.
	MulticallDetections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gatelog_multicall_detections_total",
			Help: "Total number of multicall authentication attack detections",
		},
	)

	// HTTPRequestsTotal counts requests passing through the middleware stack.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatelog_http_requests_total",
			Help: "Total number of HTTP requests seen by the middleware stack",
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestDuration observes request latency through the stack.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gatelog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPActiveRequests gauges requests currently in flight.
	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gatelog_http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)
)

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}
