// Package metrics defines and registers all custom Prometheus metrics for the
// stress-support API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stress"

// AuthAttemptsTotal counts register/login attempts by outcome.
// Labels:
//   - operation: "register" or "login"
//   - result: "ok", "invalid", "conflict", or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)

// PredictionsTotal counts proxied prediction requests by outcome.
// Label:
//   - result: "ok", "upstream_error", "unreachable", or "error"
var PredictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of prediction requests proxied upstream, by result.",
	},
	[]string{"result"},
)

// PredictionCacheTotal counts prediction cache decisions.
// Label:
//   - result: "hit" (served from cache) or "miss" (upstream called)
var PredictionCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_cache_total",
		Help:      "Total number of prediction cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// UpstreamLatency measures the round-trip time of calls to the ML service.
var UpstreamLatency = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_latency_seconds",
		Help:      "Duration of calls to the external prediction service.",
		Buckets:   prometheus.DefBuckets,
	},
)
