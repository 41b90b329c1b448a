package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rigfit_analyses_total",
		Help: "Completed analysis runs by scoring policy and reduction reuse.",
	}, []string{"scoring", "reused"})

	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rigfit_analysis_duration_seconds",
		Help:    "Wall-clock time of one analysis run.",
		Buckets: prometheus.DefBuckets,
	})
)

func recordAnalysis(scoring string, reused bool, elapsed time.Duration) {
	reusedLabel := "false"
	if reused {
		reusedLabel = "true"
	}
	analysesTotal.WithLabelValues(scoring, reusedLabel).Inc()
	analysisDuration.Observe(elapsed.Seconds())
}
