// Package metrics defines the HTTP-facing Prometheus metrics and the store
// gauges. Domain event counters live in internal/pkg/telemetry.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hirelane/ats/internal/core/aggregate"
	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/policy"
	"github.com/hirelane/ats/internal/core/ports"
)

const namespace = "ats"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Labels:
//   - role: the role hint submitted with the credentials
//   - result: "success" or "rejected"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by role hint and result.",
	},
	[]string{"role", "result"},
)

// ── Entity metrics ────────────────────────────────────────────────────────────

// EntitiesCreatedTotal counts successfully created entities.
// Label:
//   - kind: "user", "client", "position", "candidate", "invoice", "chat_message"
var EntitiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entities_created_total",
		Help:      "Total number of entities created, by kind.",
	},
	[]string{"kind"},
)

// ── Store gauges ──────────────────────────────────────────────────────────────

var (
	PositionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "positions",
			Help:      "Current number of positions, by status.",
		},
		[]string{"status"},
	)

	CandidatesGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidates",
			Help:      "Current number of candidates, by status.",
		},
		[]string{"status"},
	)

	// RevenueGauge sums invoice amounts. "overdue" is a subset of "pending".
	RevenueGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "revenue",
			Help:      "Current invoice amounts, by status (paid, pending, overdue).",
		},
		[]string{"status"},
	)

	StoreVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_version",
			Help:      "Number of committed writes to the entity store.",
		},
	)
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

var (
	// HTTPRequestsTotal counts all HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration records request duration in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Middleware records request count and latency labelled by route pattern.
// Errors are rendered here so the recorded status is the one sent.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
			HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// ObserveStore refreshes the store gauges from a committed change. It is
// registered as an EntityStore subscriber; orphans are not counted.
func ObserveStore(c ports.Change) {
	RecordSnapshot(c.Snapshot, time.Now().UTC())
	StoreVersion.Set(float64(c.Version))
}

// RecordSnapshot sets the store gauges from d as seen by a superadmin.
func RecordSnapshot(d domain.Dataset, now time.Time) {
	view := policy.Scope(domain.SuperAdmin("metrics"), d)

	pos := aggregate.CountPositions(view.Positions)
	PositionsGauge.WithLabelValues(string(domain.PositionOpen)).Set(float64(pos.Open))
	PositionsGauge.WithLabelValues(string(domain.PositionClosed)).Set(float64(pos.Closed))

	cand := aggregate.CountCandidates(view.Candidates)
	CandidatesGauge.WithLabelValues(string(domain.CandidatePending)).Set(float64(cand.Pending))
	CandidatesGauge.WithLabelValues(string(domain.CandidateSelected)).Set(float64(cand.Selected))
	CandidatesGauge.WithLabelValues(string(domain.CandidateRejected)).Set(float64(cand.Rejected))
	CandidatesGauge.WithLabelValues(string(domain.CandidateOnHold)).Set(float64(cand.OnHold))

	rev := aggregate.SummarizeRevenue(view.Invoices, now)
	RevenueGauge.WithLabelValues(domain.LabelPaid).Set(rev.Paid)
	RevenueGauge.WithLabelValues(domain.LabelPending).Set(rev.Pending)
	RevenueGauge.WithLabelValues(domain.LabelOverdue).Set(rev.Overdue)
}
