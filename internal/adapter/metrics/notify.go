package metrics

import "github.com/prometheus/client_golang/prometheus"

// NotifyMetrics holds Prometheus metrics for notification dispatch.
type NotifyMetrics struct {
	DispatchesTotal *prometheus.CounterVec
	PushesTotal     *prometheus.CounterVec
	PushDuration    prometheus.Histogram
}

// NewNotifyMetrics creates and registers notification metrics on the given registry.
func NewNotifyMetrics(reg prometheus.Registerer) *NotifyMetrics {
	m := &NotifyMetrics{
		DispatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_dispatched_total",
			Help:      "Total number of notifications dispatched, by category and result.",
		}, []string{"category", "result"}),
		PushesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pushes_total",
			Help:      "Total number of push deliveries attempted, by result.",
		}, []string{"result"}),
		PushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "push_duration_seconds",
			Help:      "Duration of push delivery attempts in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
	}

	reg.MustRegister(m.DispatchesTotal, m.PushesTotal, m.PushDuration)
	return m
}
