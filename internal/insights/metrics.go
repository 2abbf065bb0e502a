package insights

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	servedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_suggestions_served_total",
			Help: "Suggestion responses served, by source",
		},
		[]string{"source"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insights_generation_duration_seconds",
			Help:    "Latency of generative completion calls",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"outcome"},
	)
)

func recordServed(source string) {
	servedTotal.WithLabelValues(source).Inc()
}

func recordGeneration(duration time.Duration, ok bool) {
	outcome := "error"
	if ok {
		outcome = "success"
	}
	generationDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}
