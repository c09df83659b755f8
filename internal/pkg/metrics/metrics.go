// Package metrics exposes the Prometheus instruments of the ordering
// service. Collectors are registered on the default registry and served
// via promhttp in the application entry point.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersCreatedTotal counts successfully created orders.
	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created",
		},
	)

	// OutboxDispatchedTotal counts outbox messages delivered to the broker.
	OutboxDispatchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outbox_dispatched_total",
			Help: "Total number of outbox messages delivered to the broker",
		},
	)

	// OutboxPublishFailuresTotal counts failed delivery attempts.
	// Failures are retried on the next dispatcher tick.
	OutboxPublishFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outbox_publish_failures_total",
			Help: "Total number of failed outbox delivery attempts",
		},
	)

	// OutboxPendingMessages reports the size of the last fetched batch.
	OutboxPendingMessages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "outbox_pending_messages",
			Help: "Number of undelivered messages seen by the last dispatcher run",
		},
	)
)
