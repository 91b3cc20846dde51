// Package metrics defines the custom Prometheus metrics for the bot. It is
// the single source of truth for metric names, labels, and help strings.
//
// All metrics register with the default registry at import time; the health
// server exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "spinbot"

// EventsReceivedTotal counts inbound transport events by kind.
// Label:
//   - kind: text, contact, location, or callback
var EventsReceivedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_received_total",
		Help:      "Total number of inbound transport events, by kind.",
	},
	[]string{"kind"},
)

// SpinAttemptsTotal counts spin admissions and rejections.
// Label:
//   - result: "ok", "no_auth", "no_geo", "rate_limited", or "backend_error"
var SpinAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "spin_attempts_total",
		Help:      "Total number of spin attempts, by admission result.",
	},
	[]string{"result"},
)

// DialogTransitionsTotal counts wizard state transitions.
// Label:
//   - to: the step entered (e.g. "await_display_name", "idle")
var DialogTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dialog_transitions_total",
		Help:      "Total number of dialog state transitions, by target step.",
	},
	[]string{"to"},
)

// BackendErrorsTotal counts club API failures surfaced to the dialog layer.
// Label:
//   - kind: "auth_rejected", "rate_limited", "out_of_range", "validation",
//     or "unavailable"
var BackendErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_errors_total",
		Help:      "Total number of backend call failures, by error kind.",
	},
	[]string{"kind"},
)

// SessionsRevokedTotal counts local token removals triggered by an
// authentication-rejected backend response.
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of stored tokens dropped after backend auth rejection.",
	},
)
