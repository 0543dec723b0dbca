package metrics

import "github.com/prometheus/client_golang/prometheus"

// MatchMetrics holds Prometheus metrics for the recommendation pipeline.
type MatchMetrics struct {
	RecommendationDuration prometheus.Histogram
	CandidatesScored       prometheus.Counter
	RecommendationsServed  prometheus.Histogram
}

// NewMatchMetrics creates and registers matching metrics on the given registry.
func NewMatchMetrics(reg prometheus.Registerer) *MatchMetrics {
	m := &MatchMetrics{
		RecommendationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_duration_seconds",
			Help:      "Duration of a full recommendation computation in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		CandidatesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_scored_total",
			Help:      "Total number of candidate jobs scored against a profile.",
		}),
		RecommendationsServed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendations_served",
			Help:      "Number of recommendations returned per request.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
	}

	reg.MustRegister(m.RecommendationDuration, m.CandidatesScored, m.RecommendationsServed)
	return m
}
