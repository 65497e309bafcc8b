// Package metrics defines and registers all custom Prometheus metrics for
// the GlowDesk booking API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts authentication attempts.
// Labels:
//   - provider: "local" or "google"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by provider and result.",
	},
	[]string{"provider", "result"},
)

// RegistrationsTotal counts successful local registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful local registrations.",
	},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// DashboardFallbacksTotal counts degraded-mode responses.
// Label:
//   - view: the read view that degraded ("stats", "revenue", "staff",
//     "today", "services")
var DashboardFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_fallbacks_total",
		Help:      "Total number of dashboard reads served from the fallback payload.",
	},
	[]string{"view"},
)

// AppointmentStatusUpdatesTotal counts status mutations applied via PATCH.
// Label:
//   - status: the new appointment status
var AppointmentStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_status_updates_total",
		Help:      "Total number of appointment status updates, by target status.",
	},
	[]string{"status"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// StatusEventsProcessedTotal counts audit events persisted successfully.
var StatusEventsProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_events_processed_total",
		Help:      "Total number of status-change audit events persisted.",
	},
)

// StatusEventErrorsTotal counts audit events that failed to persist.
var StatusEventErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_event_errors_total",
		Help:      "Total number of status-change audit events that failed processing.",
	},
)

// EventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
