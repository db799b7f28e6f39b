// Package telemetry holds the Prometheus counters for domain events. The
// core services and the notification workers record into it directly, so
// neither depends on the HTTP layer.
package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ats"

// Notification results.
const (
	ResultDelivered = "delivered"
	ResultFailed    = "failed"
	ResultDropped   = "dropped"
)

// StatusTransitionsTotal counts committed status changes. No-ops (same
// status, unknown or invisible entity) are never counted.
// Labels:
//   - entity: "position", "candidate", "invoice", "user", "client"
//   - status: the status the entity moved to
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of committed status changes, by entity and new status.",
	},
	[]string{"entity", "status"},
)

// NotificationsTotal counts notification outcomes by kind and result.
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notifications, by kind and delivery result.",
	},
	[]string{"kind", "result"},
)

// NotificationQueueDepth tracks pending notifications per dispatcher worker.
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// StatusChanged records one committed transition of entity into status.
func StatusChanged(entity, status string) {
	StatusTransitionsTotal.WithLabelValues(entity, status).Inc()
}

// Notification records the outcome of one notification of kind.
func Notification(kind, result string) {
	NotificationsTotal.WithLabelValues(kind, result).Inc()
}

// QueueDepth returns the depth gauge of one dispatcher worker.
func QueueDepth(worker int) prometheus.Gauge {
	return NotificationQueueDepth.WithLabelValues(strconv.Itoa(worker))
}

// ActiveLabel renders an active flag as a status label.
func ActiveLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
