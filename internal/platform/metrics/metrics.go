package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestDuration    *prometheus.HistogramVec
	FinesIssued        prometheus.Counter
	WorkflowsResolved  prometheus.Counter
	AuditEntries       *prometheus.CounterVec
	AuditWriteFailures prometheus.Counter
	NotificationsSent  prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taxiassoc_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		FinesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taxiassoc_fines_issued_total",
			Help: "Total number of levy fines issued.",
		}),
		WorkflowsResolved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taxiassoc_workflows_resolved_total",
			Help: "Total number of disciplinary workflows resolved.",
		}),
		AuditEntries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taxiassoc_audit_entries_total",
			Help: "Audit log entries recorded, by action type.",
		}, []string{"action"}),
		AuditWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taxiassoc_audit_write_failures_total",
			Help: "Audit writes that failed and were suppressed.",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taxiassoc_notifications_sent_total",
			Help: "Total number of notifications dispatched.",
		}),
	}
}
