package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// solve outcome labels
const (
	outcomeSolved     = "solved"
	outcomeNoSolution = "no_solution"
	outcomeMalformed  = "malformed"
	outcomeInternal   = "internal"
)

type metrics struct {
	solves     *prometheus.CounterVec
	expansions prometheus.Histogram
	duration   prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		solves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shenzhen",
			Name:      "solves_total",
			Help:      "Solve requests by outcome",
		}, []string{"outcome"}),

		expansions: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shenzhen",
			Name:      "search_expansions",
			Help:      "Expanded nodes per search",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shenzhen",
			Name:      "solve_duration_seconds",
			Help:      "Search wall clock time in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}),
	}
}
