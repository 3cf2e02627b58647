// Package metrics defines the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal counts finished analyses by content kind and outcome.
	// Outcome is "success" or the failing error kind.
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "veracity_analyses_total",
		Help: "Completed analysis requests by content kind and outcome.",
	}, []string{"kind", "outcome"})

	// AnalysisDuration observes wall time per analysis, dominated by the
	// outbound model call.
	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "veracity_analysis_duration_seconds",
		Help:    "Analysis duration in seconds by content kind.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"kind"})
)
