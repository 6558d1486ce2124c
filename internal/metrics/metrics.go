// Package metrics defines the Prometheus collectors exposed on /metrics.
// Collectors register with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "maharat"

// ── HTTP ──────────────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served requests. route is the gin route template,
// not the raw path, to keep cardinality bounded.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Notifications ─────────────────────────────────────────────────────────────

var NotificationSettingsUpsertsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_settings_upserts_total",
		Help:      "Total number of notification setting tuples written by bulk updates.",
	},
)

var NotificationDefaultsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_defaults_created_total",
		Help:      "Total number of default notification setting rows inserted.",
	},
)

// ── Inventory ─────────────────────────────────────────────────────────────────

// InventoryTransactionsTotal counts audit rows by transaction type.
var InventoryTransactionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_transactions_total",
		Help:      "Total number of inventory transactions recorded, by type.",
	},
	[]string{"type"},
)

// ── Jobs ──────────────────────────────────────────────────────────────────────

// JobsProcessedTotal counts worker outcomes.
// Label result: "ok", "retry" or "dead".
var JobsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_processed_total",
		Help:      "Total number of background jobs processed, by type and result.",
	},
	[]string{"type", "result"},
)
