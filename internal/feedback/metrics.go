package feedback

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_events_total",
			Help: "Total number of feedback events submitted",
		},
		[]string{"label"},
	)

	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_predictions_total",
			Help: "Total number of response predictions served",
		},
		[]string{"label"},
	)

	analysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedback_analysis_duration_seconds",
			Help:    "Time spent computing feedback analyses",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	analysisCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_analysis_cache_total",
			Help: "Analysis cache lookups by result",
		},
		[]string{"result"},
	)

	satisfactionGauge = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedback_overall_satisfaction",
			Help:    "Distribution of computed overall satisfaction scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)
)

func recordEvent(label string) {
	eventsTotal.WithLabelValues(label).Inc()
}

func recordPrediction(label string) {
	predictionsTotal.WithLabelValues(label).Inc()
}

func recordAnalysis(duration time.Duration, satisfaction float64) {
	analysisDuration.Observe(duration.Seconds())
	satisfactionGauge.Observe(satisfaction)
}

func recordCacheLookup(hit bool) {
	if hit {
		analysisCacheHits.WithLabelValues("hit").Inc()
	} else {
		analysisCacheHits.WithLabelValues("miss").Inc()
	}
}
