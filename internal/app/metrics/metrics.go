// Package metrics registers the service collectors on the default
// prometheus registry, exposed through the ops endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Deliveries counts delivery decisions by outcome (acknowledge, redeliver).
	Deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fulfillment",
		Name:      "deliveries_total",
		Help:      "Delivery decisions by outcome.",
	}, []string{"outcome"})

	// SagaResults counts finished fulfillment attempts by reported status.
	SagaResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fulfillment",
		Name:      "saga_results_total",
		Help:      "Fulfillment results by transaction status.",
	}, []string{"status"})

	// DownstreamSeconds observes wall time per downstream operation,
	// including retries and backoff.
	DownstreamSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fulfillment",
		Name:      "downstream_request_seconds",
		Help:      "Downstream transaction service call durations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	// ReplyFailures counts reply publishes that the broker did not acknowledge.
	ReplyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fulfillment",
		Name:      "reply_publish_failures_total",
		Help:      "Reply channel publish failures.",
	})
)
