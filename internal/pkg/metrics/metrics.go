// Package metrics defines and registers all custom Prometheus metrics for the
// inventory API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto; the /metrics route exposes them together with
// the HTTP metrics recorded by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "invalid", "duplicate" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// TokenRejectionsTotal counts requests turned away by the auth gate.
// Label:
//   - reason: "missing", "expired", "invalid" or "unconfigured"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected by the auth gate.",
	},
	[]string{"reason"},
)

// ── Inventory metrics ─────────────────────────────────────────────────────────

// InventoryWritesTotal counts successful writes to inventory records.
// Label:
//   - operation: "created", "updated" or "deleted"
var InventoryWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_written_total",
		Help:      "Total number of inventory record writes, by operation.",
	},
	[]string{"operation"},
)

// StatsCacheTotal counts stats cache lookups and refused writes.
// Label:
//   - result: "hit", "miss" or "stale" (write refused after an invalidation)
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of stats cache lookups and refused writes, labelled by result (hit/miss/stale).",
	},
	[]string{"result"},
)

// ── Change journal metrics ────────────────────────────────────────────────────

// JournalQueueDepth tracks the number of changes waiting in each journal worker.
var JournalQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "journal_queue_depth",
		Help:      "Current number of changes pending in each journal worker channel.",
	},
	[]string{"worker_id"},
)

// JournalErrorsTotal counts changes that could not be journaled.
// Label:
//   - reason: "dropped" (queue full or caller gone), "closed" (after shutdown) or "insert_failed"
var JournalErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_errors_total",
		Help:      "Total number of inventory changes that failed to be journaled.",
	},
	[]string{"reason"},
)

// JournalWriteDuration measures how long persisting one change takes.
var JournalWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "journal_write_duration_seconds",
		Help:      "Duration of a single change journal insert.",
		Buckets:   prometheus.DefBuckets,
	},
)
