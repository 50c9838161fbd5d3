package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// CRM sync metrics
	SyncAttempts prometheus.Counter
	SyncFailures prometheus.Counter
	SyncDuration prometheus.Histogram

	// Notification metrics
	NotificationsSent *prometheus.CounterVec

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
}

// New creates the application metrics. Registration is left to the caller so
// tests can construct metrics without touching the default registry.
func New(namespace string) *Metrics {
	return &Metrics{
		SyncAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crm_sync_attempts_total",
			Help:      "Total number of CRM sync attempts",
		}),
		SyncFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crm_sync_failures_total",
			Help:      "Total number of CRM syncs that returned a failure result",
		}),
		SyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "crm_sync_duration_seconds",
			Help:      "Time spent on one end-to-end CRM sync",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Total number of notification delivery attempts",
		}, []string{"channel", "status"}),
		DatabaseOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
	}
}

// Register registers all metrics with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.SyncAttempts,
		m.SyncFailures,
		m.SyncDuration,
		m.NotificationsSent,
		m.DatabaseOperations,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
