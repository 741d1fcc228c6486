// Package metrics defines and registers the custom Prometheus metrics for the
// NewsGPT API. It is the single source of truth for metric names, labels, and
// help strings.
//
// All collectors are registered with the default registry on package init via
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newsgpt"

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheLookupsTotal counts read-cache lookups.
// Labels:
//   - kind: "articles" or "summaries"
//   - result: "hit", "miss" or "error"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of read-cache lookups, by resource kind and result.",
	},
	[]string{"kind", "result"},
)

// CacheErrorsTotal counts cache operations that failed and were absorbed.
// Labels:
//   - op: "get_page", "set_page", "invalidate", "get_item", "set_item", "delete_item"
var CacheErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_errors_total",
		Help:      "Total number of cache operations that failed and fell back to the store.",
	},
	[]string{"op"},
)

// CacheInvalidationsTotal counts owner+kind prefix invalidations.
var CacheInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of owner-scoped cache invalidations, by resource kind.",
	},
	[]string{"kind"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup, login and refresh outcomes.
// Labels:
//   - op: "signup", "login", "refresh", "logout"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication operations, by operation and result.",
	},
	[]string{"op", "result"},
)

// SessionRefreshesTotal counts transparent access-token refreshes performed
// by the session middleware.
// Label:
//   - result: "refreshed", "rejected" or "user_missing"
var SessionRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refreshes_total",
		Help:      "Total number of transparent session refresh attempts, by result.",
	},
	[]string{"result"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourcesCreatedTotal counts newly created articles and summaries.
var ResourcesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_created_total",
		Help:      "Total number of resources created, by kind.",
	},
	[]string{"kind"},
)

// SummarizerDuration measures calls to the external summarization model.
// Label:
//   - outcome: "success" or "error"
var SummarizerDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "summarizer_duration_seconds",
		Help:      "Duration of summarization model calls.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"outcome"},
)
