package profile

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	buildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_build_duration_seconds",
			Help:    "Time spent assembling comprehensive profiles",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	snapshotFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_snapshot_failures_total",
			Help: "Profile snapshot writes that failed",
		},
	)

	rebuildQueue = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_rebuild_requests_total",
			Help: "Background rebuild requests by outcome",
		},
		[]string{"outcome"},
	)
)

func recordBuild(duration time.Duration) {
	buildDuration.Observe(duration.Seconds())
}

func recordSnapshotFailure() {
	snapshotFailures.Inc()
}

func recordRebuildEnqueued() {
	rebuildQueue.WithLabelValues("enqueued").Inc()
}

func recordRebuildDropped() {
	rebuildQueue.WithLabelValues("dropped").Inc()
}
