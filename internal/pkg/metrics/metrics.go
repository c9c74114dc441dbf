// Package metrics defines and registers all custom Prometheus metrics for the
// CineMind studio API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cinemind"

// ── Account metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts successful logins.
// Label:
//   - result: "registered" (account created by this login) or "existing"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins, by whether the account was created.",
	},
	[]string{"result"},
)

// ── Script analysis metrics ───────────────────────────────────────────────────

// AnalysesTotal counts analysis requests that produced a response.
// Label:
//   - outcome: "created" (new record) or "replayed" (idempotency key hit)
var AnalysesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "script_analyses_total",
		Help:      "Total number of script analyses answered, by outcome.",
	},
	[]string{"outcome"},
)

// UploadsStoredTotal counts uploaded screenplay files kept by upload storage.
// Label:
//   - backend: "disk" or "s3"
var UploadsStoredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_stored_total",
		Help:      "Total number of uploaded script files stored, by backend.",
	},
	[]string{"backend"},
)

// ── Creative intent metrics ───────────────────────────────────────────────────

// CreativeIntentTotal counts creative-intent decisions.
// Labels:
//   - source: "model" or "fallback"
//   - reason: "live", "cache", "no_credential" or "model_error"
var CreativeIntentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "creative_intent_total",
		Help:      "Total number of creative-intent extractions, by source and reason.",
	},
	[]string{"source", "reason"},
)

// CreativeIntentDuration measures how long an extraction took end-to-end.
var CreativeIntentDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "creative_intent_duration_seconds",
		Help:      "Duration of creative-intent extraction including the model call.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"source"},
)

// ── Mock studio metrics ───────────────────────────────────────────────────────

// FootageResults observes how many clips a footage search returned.
var FootageResults = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "footage_search_results",
		Help:      "Number of clips returned per footage search.",
		Buckets:   []float64{0, 1, 2, 4, 8},
	},
)

// VideoRendersTotal counts preview renders handed out.
var VideoRendersTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "video_renders_total",
		Help:      "Total number of preview renders returned.",
	},
)

// ── Activity log metrics ──────────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of entries waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityDroppedTotal counts entries discarded because a worker channel was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of activity entries dropped because the queue was full.",
	},
)

// ActivityErrorsTotal counts entries that failed to persist.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity entries that failed to persist.",
	},
)
