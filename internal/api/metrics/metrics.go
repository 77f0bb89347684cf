// Package metrics defines the custom Prometheus metrics of the farm manager
// API. Request-level HTTP metrics come from echoprometheus; the vectors here
// describe access decisions, collection writes and derived views.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "farm"

// ── Access metrics ────────────────────────────────────────────────────────────

// AccessDecisionsTotal counts gate evaluations.
// Labels:
//   - section: the registry key or route group that was gated
//   - outcome: "render_children", "render_fallback" or "render_nothing"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of access gate decisions, by section and outcome.",
	},
	[]string{"section", "outcome"},
)

// ── Collection metrics ────────────────────────────────────────────────────────

// WritesTotal counts submitted collection writes.
// Labels:
//   - collection: e.g. "animals"
//   - op: "create", "update" or "delete"
//   - result: "ok" or "error"
var WritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collection_writes_total",
		Help:      "Total number of collection writes, by collection, operation and result.",
	},
	[]string{"collection", "op", "result"},
)

// FetchErrorsTotal counts failed collection selects.
var FetchErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collection_fetch_errors_total",
		Help:      "Total number of failed collection fetches.",
	},
	[]string{"collection"},
)

// ── Derived view metrics ──────────────────────────────────────────────────────

// DerivedViewDuration measures fetch plus derivation time of a dashboard view.
// Label:
//   - view: "animals", "inventory", "health_reminders", "breeding", "finance" or "overview"
var DerivedViewDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "derived_view_duration_seconds",
		Help:      "Duration of building a derived dashboard view.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"view"},
)
