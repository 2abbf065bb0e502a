package journey

import (
	"testing"

	"github.com/emberlyhq/emberly-backend/internal/archetype"
	"github.com/emberlyhq/emberly-backend/internal/feedback"
)

func detectionTypes(detections []*Detection) map[string]*Detection {
	byType := make(map[string]*Detection, len(detections))
	for _, d := range detections {
		byType[d.Type] = d
	}
	return byType
}

func TestRunDetectorsEmptyState(t *testing.T) {
	input := &DetectorInput{
		Analysis: feedback.BuildAnalysis(nil),
	}

	if detections := RunDetectors(input); len(detections) != 0 {
		t.Fatalf("expected no detections for an empty state, got %d", len(detections))
	}
}

func TestDetectBlueprintCompletion(t *testing.T) {
	input := &DetectorInput{
		Analysis:   feedback.BuildAnalysis(nil),
		Assignment: &archetype.Assignment{UserID: 1, Primary: archetype.Sensual},
	}

	byType := detectionTypes(RunDetectors(input))
	d, ok := byType[TypeBlueprintCompletion]
	if !ok {
		t.Fatal("expected blueprint_completion once the primary archetype is set")
	}
	if d.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", d.Confidence)
	}
	if d.Significance != SignificanceHigh {
		t.Errorf("significance = %q, want high", d.Significance)
	}
}

func TestDetectCommunicationBreakthrough(t *testing.T) {
	analysis := &feedback.Analysis{TotalEvents: 6, OverallSatisfaction: 0.85}

	byType := detectionTypes(RunDetectors(&DetectorInput{Analysis: analysis}))
	if _, ok := byType[TypeCommunicationBreakthrough]; !ok {
		t.Fatal("expected communication_breakthrough at high satisfaction")
	}

	// Not enough events yet, however good they were
	thin := &feedback.Analysis{TotalEvents: 4, OverallSatisfaction: 0.95}
	byType = detectionTypes(RunDetectors(&DetectorInput{Analysis: thin}))
	if _, ok := byType[TypeCommunicationBreakthrough]; ok {
		t.Fatal("should not fire below five events")
	}

	// Boundary: 0.8 exactly does not qualify
	boundary := &feedback.Analysis{TotalEvents: 10, OverallSatisfaction: 0.8}
	byType = detectionTypes(RunDetectors(&DetectorInput{Analysis: boundary}))
	if _, ok := byType[TypeCommunicationBreakthrough]; ok {
		t.Fatal("satisfaction must exceed 0.8")
	}
}

func TestDetectAdventurousExplorer(t *testing.T) {
	analysis := &feedback.Analysis{
		TotalEvents: 8,
		CategoryPreferences: []*feedback.CategoryPreference{
			{Category: "touch"}, {Category: "words"}, {Category: "playful"},
			{Category: "adventure"}, {Category: "romance"},
		},
	}

	byType := detectionTypes(RunDetectors(&DetectorInput{Analysis: analysis}))
	if _, ok := byType[TypeAdventurousExplorer]; !ok {
		t.Fatal("expected adventurous_explorer with five categories tried")
	}

	analysis.CategoryPreferences = analysis.CategoryPreferences[:4]
	byType = detectionTypes(RunDetectors(&DetectorInput{Analysis: analysis}))
	if _, ok := byType[TypeAdventurousExplorer]; ok {
		t.Fatal("should not fire with four categories")
	}
}

func TestDetectConsistencyStreak(t *testing.T) {
	input := &DetectorInput{
		Analysis:         feedback.BuildAnalysis(nil),
		RecentEventCount: 10,
	}

	byType := detectionTypes(RunDetectors(input))
	if _, ok := byType[TypeConsistencyStreak]; !ok {
		t.Fatal("expected consistency_streak at ten recent events")
	}

	input.RecentEventCount = 9
	byType = detectionTypes(RunDetectors(input))
	if _, ok := byType[TypeConsistencyStreak]; ok {
		t.Fatal("should not fire below ten recent events")
	}
}

func TestDetectHeatSeeker(t *testing.T) {
	analysis := &feedback.Analysis{
		TotalEvents:          12,
		SuccessPatterns:      []string{"touch_spicy"},
		IntensityPreferences: &feedback.IntensityPreferences{Spicy: 0.85, Optimal: feedback.IntensitySpicy},
	}

	byType := detectionTypes(RunDetectors(&DetectorInput{Analysis: analysis}))
	if _, ok := byType[TypeHeatSeeker]; !ok {
		t.Fatal("expected heat_seeker with a spicy success pattern and strong spicy ratio")
	}

	// A success pattern at mild intensity should not count
	mild := &feedback.Analysis{
		TotalEvents:          12,
		SuccessPatterns:      []string{"touch_sweet"},
		IntensityPreferences: &feedback.IntensityPreferences{Spicy: 0.85},
	}
	byType = detectionTypes(RunDetectors(&DetectorInput{Analysis: mild}))
	if _, ok := byType[TypeHeatSeeker]; ok {
		t.Fatal("sweet success patterns should not trigger heat_seeker")
	}

	// A hot pattern without a strong intensity ratio should not count
	weak := &feedback.Analysis{
		TotalEvents:          12,
		SuccessPatterns:      []string{"touch_wild"},
		IntensityPreferences: &feedback.IntensityPreferences{Wild: 0.6},
	}
	byType = detectionTypes(RunDetectors(&DetectorInput{Analysis: weak}))
	if _, ok := byType[TypeHeatSeeker]; ok {
		t.Fatal("weak intensity ratios should not trigger heat_seeker")
	}
}
