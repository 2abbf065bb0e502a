package journey

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	detectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journey_detections_total",
			Help: "Milestone detections surfaced, by type",
		},
		[]string{"type"},
	)

	milestonesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journey_milestones_created_total",
			Help: "Milestones persisted, by type and significance",
		},
		[]string{"type", "significance"},
	)

	celebrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "journey_celebrations_total",
			Help: "Milestones marked as celebrated",
		},
	)

	phaseClassifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journey_phase_classifications_total",
			Help: "Journey analyses served, by classified phase",
		},
		[]string{"phase"},
	)
)

func recordDetection(milestoneType string) {
	detectionsTotal.WithLabelValues(milestoneType).Inc()
}

func recordMilestoneCreated(milestoneType, significance string) {
	milestonesCreated.WithLabelValues(milestoneType, significance).Inc()
}

func recordCelebration() {
	celebrationsTotal.Inc()
}

func recordPhase(phase string) {
	phaseClassifications.WithLabelValues(phase).Inc()
}
