// Package metrics defines Prometheus metrics for the stock monitor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gag"

// Upstream API metrics.
var (
	UpstreamCallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_calls_total",
		Help:      "Total number of upstream API calls attempted.",
	})

	FetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_errors_total",
		Help:      "Total number of failed fetch cycles, by error kind.",
	}, []string{"kind"})

	DailyBudgetHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "daily_budget_hits_total",
		Help:      "Times the rolling daily API budget blocked a fetch.",
	})
)

// Polling cycle metrics.
var (
	CyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cycles_total",
		Help:      "Total number of completed polling cycles.",
	})

	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cycle_duration_seconds",
		Help:      "Duration of polling cycles in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	ItemsInStock = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "items_in_stock",
		Help:      "Items with nonzero quantity in the latest snapshot, by category.",
	}, []string{"category"})

	WatchedInStock = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "watched_items_in_stock",
		Help:      "Watched items with nonzero quantity in the latest snapshot.",
	})
)

// Notification metrics.
var (
	AlertsFiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_fired_total",
		Help:      "Total number of stock alerts delivered.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of failed notification deliveries.",
	})
)
