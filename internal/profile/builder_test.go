package profile

import (
	"math"
	"reflect"
	"testing"

	"github.com/emberlyhq/emberly-backend/internal/archetype"
	"github.com/emberlyhq/emberly-backend/internal/feedback"
	"github.com/emberlyhq/emberly-backend/internal/journey"
)

func TestArchetypeConfidence(t *testing.T) {
	tests := []struct {
		name   string
		scores map[string]float64
		want   float64
	}{
		{"clear leader", map[string]float64{"sensual": 10, "energetic": 5}, math.Min((10-5)/10.0+0.3, 1.0)},
		{"runaway leader caps at one", map[string]float64{"kinky": 10, "sexual": 1}, 1.0},
		{"dead heat", map[string]float64{"sensual": 8, "energetic": 8}, 0.3},
		{"all zero guards division", map[string]float64{"sensual": 0, "energetic": 0}, 0.5},
		{"nil scores", nil, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := archetypeConfidence(tt.scores); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("archetypeConfidence(%v) = %v, want %v", tt.scores, got, tt.want)
			}
		})
	}
}

func TestBuildWithoutAssignment(t *testing.T) {
	built := Build(&BuildInput{
		Analysis:     feedback.BuildAnalysis(nil),
		DaysTogether: 3,
	})

	if built.PrimaryArchetype != "" {
		t.Errorf("primary archetype = %q, want empty", built.PrimaryArchetype)
	}
	if built.ArchetypeConfidence != 0.5 {
		t.Errorf("confidence = %v, want neutral 0.5", built.ArchetypeConfidence)
	}
	if built.OverallSatisfaction != 0.7 {
		t.Errorf("satisfaction = %v, want empty-log default 0.7", built.OverallSatisfaction)
	}
	if built.OptimalIntensity != feedback.IntensityFlirty {
		t.Errorf("optimal intensity = %q, want flirty", built.OptimalIntensity)
	}
	if built.RelationshipPhase != journey.PhaseExploring {
		t.Errorf("phase = %q, want exploring", built.RelationshipPhase)
	}
	if len(built.FutureRecommendations) == 0 {
		t.Fatal("recommendations must never be empty")
	}
}

func TestBuildMergesAssignment(t *testing.T) {
	secondary := archetype.Energetic
	input := &BuildInput{
		Analysis: feedback.BuildAnalysis(nil),
		Assignment: &archetype.Assignment{
			UserID:    1,
			Primary:   archetype.Sensual,
			Secondary: &secondary,
			Scores:    map[string]float64{"sensual": 12, "energetic": 6, "kinky": 2},
		},
		DaysTogether: 10,
	}

	built := Build(input)
	if built.PrimaryArchetype != archetype.Sensual {
		t.Errorf("primary = %q, want sensual", built.PrimaryArchetype)
	}
	if built.SecondaryArchetype == nil || *built.SecondaryArchetype != archetype.Energetic {
		t.Error("secondary archetype not carried through")
	}
	want := math.Min((12-6)/12.0+0.3, 1.0)
	if math.Abs(built.ArchetypeConfidence-want) > 1e-9 {
		t.Errorf("confidence = %v, want %v", built.ArchetypeConfidence, want)
	}
}

func TestBuildTraits(t *testing.T) {
	notes := "that was great"
	events := []*feedback.Event{
		{Category: "touch", Intensity: feedback.IntensitySpicy, Label: feedback.LabelLoved, Notes: &notes},
		{Category: "touch", Intensity: feedback.IntensitySpicy, Label: feedback.LabelLoved},
		{Category: "words", Intensity: feedback.IntensityWild, Label: feedback.LabelNotForUs},
		{Category: "playful", Intensity: feedback.IntensitySweet, Label: feedback.LabelTried},
	}

	built := Build(&BuildInput{Analysis: feedback.BuildAnalysis(events), DaysTogether: 1})
	traits := built.PersonalityTraits

	// 3 distinct categories / 8
	if math.Abs(traits.Openness-0.375) > 1e-9 {
		t.Errorf("openness = %v, want 0.375", traits.Openness)
	}
	// spicy ratio 1.0, wild ratio 0.0
	if math.Abs(traits.Adventurousness-0.5) > 1e-9 {
		t.Errorf("adventurousness = %v, want 0.5", traits.Adventurousness)
	}
	// 1 of 4 events carries notes
	if math.Abs(traits.Expressiveness-0.25) > 1e-9 {
		t.Errorf("expressiveness = %v, want 0.25", traits.Expressiveness)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	events := []*feedback.Event{
		{Category: "touch", Intensity: feedback.IntensitySpicy, Label: feedback.LabelLoved},
		{Category: "words", Intensity: feedback.IntensityFlirty, Label: feedback.LabelTried},
		{Category: "touch", Intensity: feedback.IntensitySpicy, Label: feedback.LabelLoved},
	}
	input := &BuildInput{
		Analysis: feedback.BuildAnalysis(events),
		Assignment: &archetype.Assignment{
			Primary: archetype.Kinky,
			Scores:  map[string]float64{"kinky": 9, "sexual": 4},
		},
		Engagement:   &EngagementStats{SessionsPerWeek: 3, AvgSessionMinutes: 12, PreferredTimeOfDay: feedback.TimeEvening},
		DaysTogether: 50,
	}

	first := Build(input)
	second := Build(input)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must produce identical profiles")
	}
}
