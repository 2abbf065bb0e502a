// internal/journey/detectors.go
// Rule-based milestone detectors. Each detector inspects the current
// feedback analysis (plus archetype state and recent activity) and
// emits a candidate with a fixed confidence. Only candidates above the
// confidence floor are surfaced to callers.

package journey

import (
	"fmt"
	"strings"

	"github.com/emberlyhq/emberly-backend/internal/archetype"
	"github.com/emberlyhq/emberly-backend/internal/feedback"
)

// Detections below this confidence stay internal.
const confidenceFloor = 0.6

// Milestone types emitted by the detector set
const (
	TypeBlueprintCompletion       = "blueprint_completion"
	TypeCommunicationBreakthrough = "communication_breakthrough"
	TypeAdventurousExplorer       = "adventurous_explorer"
	TypeConsistencyStreak         = "consistency_streak"
	TypeHeatSeeker                = "heat_seeker"
)

// DetectorInput is everything the detector set looks at.
type DetectorInput struct {
	Analysis        *feedback.Analysis
	Assignment      *archetype.Assignment // nil when the quiz is incomplete
	RecentEventCount int                  // events in the last 30 days
}

// RunDetectors evaluates the fixed detector set and returns the
// candidates that clear the confidence floor.
func RunDetectors(input *DetectorInput) []*Detection {
	detectors := []func(*DetectorInput) *Detection{
		detectBlueprintCompletion,
		detectCommunicationBreakthrough,
		detectAdventurousExplorer,
		detectConsistencyStreak,
		detectHeatSeeker,
	}

	var detections []*Detection
	for _, detect := range detectors {
		if d := detect(input); d != nil && d.Confidence > confidenceFloor {
			detections = append(detections, d)
		}
	}

	return detections
}

func detectBlueprintCompletion(input *DetectorInput) *Detection {
	if input.Assignment == nil || input.Assignment.Primary == "" {
		return nil
	}

	return &Detection{
		Type:         TypeBlueprintCompletion,
		Title:        "Blueprint Discovered",
		Description:  fmt.Sprintf("You've discovered your %s blueprint, the foundation of everything we suggest.", input.Assignment.Primary),
		Confidence:   0.9,
		Significance: SignificanceHigh,
		Context: MilestoneContext{
			TriggerEvents:         []string{"archetype quiz completed"},
			GrowthAreas:           []string{"self-awareness", "shared language"},
			CelebrationSuggestion: "Share one thing your blueprint taught you about yourself over a quiet dinner.",
		},
	}
}

func detectCommunicationBreakthrough(input *DetectorInput) *Detection {
	analysis := input.Analysis
	if analysis == nil || analysis.TotalEvents < 5 || analysis.OverallSatisfaction <= 0.8 {
		return nil
	}

	return &Detection{
		Type:         TypeCommunicationBreakthrough,
		Title:        "Communication Breakthrough",
		Description:  "Your feedback shows you're consistently loving what you try together. That only happens when both of you are being heard.",
		Confidence:   0.8,
		Significance: SignificanceHigh,
		Context: MilestoneContext{
			TriggerEvents:         []string{fmt.Sprintf("%.0f%% satisfaction across %d recent activities", analysis.OverallSatisfaction*100, analysis.TotalEvents)},
			GrowthAreas:           []string{"communication", "trust"},
			CelebrationSuggestion: "Tell each other which recent moment surprised you most.",
		},
	}
}

func detectAdventurousExplorer(input *DetectorInput) *Detection {
	analysis := input.Analysis
	if analysis == nil || len(analysis.CategoryPreferences) < 5 {
		return nil
	}

	categories := make([]string, 0, 3)
	for _, pref := range analysis.CategoryPreferences {
		if len(categories) == 3 {
			break
		}
		categories = append(categories, pref.Category)
	}

	return &Detection{
		Type:         TypeAdventurousExplorer,
		Title:        "Adventurous Explorers",
		Description:  fmt.Sprintf("You've explored %d different kinds of connection together.", len(analysis.CategoryPreferences)),
		Confidence:   0.75,
		Significance: SignificanceMedium,
		Context: MilestoneContext{
			TriggerEvents:         []string{"categories tried: " + strings.Join(categories, ", ") + "..."},
			GrowthAreas:           []string{"variety", "openness"},
			CelebrationSuggestion: "Pick the category you both loved most and plan a repeat.",
		},
	}
}

func detectConsistencyStreak(input *DetectorInput) *Detection {
	if input.RecentEventCount < 10 {
		return nil
	}

	return &Detection{
		Type:         TypeConsistencyStreak,
		Title:        "Showing Up For Each Other",
		Description:  fmt.Sprintf("%d shared activities in the last month. Consistency is the quiet superpower of great couples.", input.RecentEventCount),
		Confidence:   0.7,
		Significance: SignificanceMedium,
		Context: MilestoneContext{
			TriggerEvents:         []string{fmt.Sprintf("%d feedback events in 30 days", input.RecentEventCount)},
			GrowthAreas:           []string{"consistency", "ritual"},
			CelebrationSuggestion: "Mark your streak with a spontaneous date night, no app required.",
		},
	}
}

func detectHeatSeeker(input *DetectorInput) *Detection {
	analysis := input.Analysis
	if analysis == nil {
		return nil
	}

	// Needs a repeated-love pattern at spicy or wild plus a strong
	// bucket ratio; a single lucky night doesn't count.
	hotPattern := ""
	for _, pattern := range analysis.SuccessPatterns {
		if strings.HasSuffix(pattern, "_"+feedback.IntensitySpicy) || strings.HasSuffix(pattern, "_"+feedback.IntensityWild) {
			hotPattern = pattern
			break
		}
	}
	if hotPattern == "" {
		return nil
	}

	prefs := analysis.IntensityPreferences
	if prefs == nil || (prefs.Spicy <= 0.7 && prefs.Wild <= 0.7) {
		return nil
	}

	return &Detection{
		Type:         TypeHeatSeeker,
		Title:        "Turning Up the Heat",
		Description:  "You've found a higher-intensity groove that works for both of you.",
		Confidence:   0.65,
		Significance: SignificanceMedium,
		Context: MilestoneContext{
			TriggerEvents:         []string{"repeated loved feedback: " + hotPattern},
			GrowthAreas:           []string{"adventure", "vulnerability"},
			CelebrationSuggestion: "Let whoever was more hesitant pick the next adventure.",
		},
	}
}
