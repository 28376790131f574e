// Package metrics defines and registers all custom Prometheus metrics for
// the tours API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry via promauto
// and are served through the echoprometheus handler on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tours"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - role: "client" or "admin" (the partition the email resolved to)
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// RegistrationsTotal counts successful registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful registrations, by role.",
	},
	[]string{"role"},
)

// ── Booking request metrics ───────────────────────────────────────────────────

// RequestsCreatedTotal counts booking requests submitted by clients.
var RequestsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_requests_created_total",
		Help:      "Total number of booking requests submitted.",
	},
)

// RequestTransitionsTotal counts lifecycle transitions applied to booking
// requests, labelled by the resulting status. Idempotent no-ops on terminal
// requests are counted under result "noop".
var RequestTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_request_transitions_total",
		Help:      "Total number of booking request status transitions.",
	},
	[]string{"to"},
)

// ── Review metrics ────────────────────────────────────────────────────────────

// ReviewsCreatedTotal counts reviews submitted, labelled by rating value.
var ReviewsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews submitted, by rating.",
	},
	[]string{"rating"},
)

// RatingRecomputesTotal counts background rating recomputations.
// Label:
//   - result: "ok", "empty" (tour has no reviews), or "error"
var RatingRecomputesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rating_recomputes_total",
		Help:      "Total number of derived-rating recomputations, by result.",
	},
	[]string{"result"},
)
