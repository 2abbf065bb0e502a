package journey

import "testing"

func TestClassifyPhase(t *testing.T) {
	tests := []struct {
		name         string
		days         int
		satisfaction float64
		want         string
	}{
		{"new couple defaults to exploring", 5, 0.7, PhaseExploring},
		{"thirty days is not enough for building", 30, 0.7, PhaseExploring},
		{"building needs tenure and decent satisfaction", 31, 0.61, PhaseBuilding},
		{"deepening needs long tenure and high satisfaction", 91, 0.81, PhaseDeepening},
		{"long tenure with middling satisfaction stays building", 120, 0.7, PhaseBuilding},
		{"low satisfaction overrides tenure", 365, 0.39, PhaseRenewing},
		{"boundary satisfaction 0.4 is not renewing", 5, 0.4, PhaseExploring},
		{"boundary satisfaction 0.8 at long tenure is building", 100, 0.8, PhaseBuilding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPhase(tt.days, tt.satisfaction); got != tt.want {
				t.Errorf("ClassifyPhase(%d, %v) = %q, want %q", tt.days, tt.satisfaction, got, tt.want)
			}
		})
	}
}

func TestPhaseCanMoveBackwards(t *testing.T) {
	if got := ClassifyPhase(100, 0.85); got != PhaseDeepening {
		t.Fatalf("expected deepening, got %q", got)
	}
	// Same couple after a rough month
	if got := ClassifyPhase(130, 0.3); got != PhaseRenewing {
		t.Fatalf("expected renewing after satisfaction drop, got %q", got)
	}
}

func TestOverallProgress(t *testing.T) {
	tests := []struct {
		name       string
		milestones int
		phase      string
		want       int
	}{
		{"five milestones building", 5, PhaseBuilding, 60},
		{"milestone points cap at seventy", 10, PhaseExploring, 75},
		{"total caps at one hundred", 12, PhaseDeepening, 90},
		{"no milestones exploring", 0, PhaseExploring, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overallProgress(tt.milestones, tt.phase); got != tt.want {
				t.Errorf("overallProgress(%d, %q) = %d, want %d", tt.milestones, tt.phase, got, tt.want)
			}
		})
	}
}

func TestNextPhaseProgression(t *testing.T) {
	if got := nextPhase(PhaseExploring); got != PhaseBuilding {
		t.Errorf("after exploring expected building, got %q", got)
	}
	if got := nextPhase(PhaseDeepening); got != PhaseMaintaining {
		t.Errorf("after deepening expected maintaining, got %q", got)
	}
	if got := nextPhase(PhaseRenewing); got != PhaseBuilding {
		t.Errorf("renewing should recover into building, got %q", got)
	}
}
