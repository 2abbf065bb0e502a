// internal/journey/phase.go
// Relationship phase classification. The phase is recomputed from
// scratch on every call rather than tracked as a state machine, so it
// can move in either direction between calls.

package journey

// Relationship phases
const (
	PhaseExploring   = "exploring"
	PhaseBuilding    = "building"
	PhaseDeepening   = "deepening"
	PhaseMaintaining = "maintaining"
	PhaseRenewing    = "renewing"
)

// ClassifyPhase derives the current phase from tenure and overall
// satisfaction. Low satisfaction overrides elapsed time: a couple in a
// rough patch lands in "renewing" no matter how long they've been
// around. Maintaining is never classified directly; it only appears as
// the predicted phase after deepening.
func ClassifyPhase(daysSinceJoin int, satisfaction float64) string {
	if satisfaction < 0.4 {
		return PhaseRenewing
	}
	if daysSinceJoin > 90 && satisfaction > 0.8 {
		return PhaseDeepening
	}
	if daysSinceJoin > 30 && satisfaction > 0.6 {
		return PhaseBuilding
	}
	return PhaseExploring
}

// phaseBonus feeds the overall progress score.
func phaseBonus(phase string) int {
	switch phase {
	case PhaseDeepening:
		return 20
	case PhaseBuilding:
		return 10
	}
	return 5
}

// nextPhase is the natural progression used for upcoming-milestone
// hints.
func nextPhase(phase string) string {
	switch phase {
	case PhaseExploring:
		return PhaseBuilding
	case PhaseBuilding:
		return PhaseDeepening
	case PhaseDeepening:
		return PhaseMaintaining
	case PhaseRenewing:
		return PhaseBuilding
	}
	return PhaseMaintaining
}
