// internal/profile/builder.go
// The profile builder: merges a feedback analysis, an archetype
// assignment and engagement heuristics into the comprehensive
// snapshot. Pure computation; identical inputs produce identical
// profiles apart from timestamps.

package profile

import (
	"math"

	"github.com/emberlyhq/emberly-backend/internal/archetype"
	"github.com/emberlyhq/emberly-backend/internal/feedback"
	"github.com/emberlyhq/emberly-backend/internal/journey"
)

const (
	topCategoryCount  = 3
	opennessDivisor   = 8
	neutralConfidence = 0.5
	neutralTrait      = 0.5
)

// BuildInput is everything the builder consumes.
type BuildInput struct {
	Analysis     *feedback.Analysis
	Assignment   *archetype.Assignment // nil when the quiz is incomplete
	Engagement   *EngagementStats
	DaysTogether int
}

// Build assembles the comprehensive profile. A missing archetype
// assignment degrades to an empty primary with neutral confidence
// rather than failing.
func Build(input *BuildInput) *ComprehensiveUserProfile {
	analysis := input.Analysis

	profile := &ComprehensiveUserProfile{
		UserPreferenceProfile: UserPreferenceProfile{
			ArchetypeConfidence: neutralConfidence,
			OverallSatisfaction: analysis.OverallSatisfaction,
			TopCategories:       topCategories(analysis),
			OptimalIntensity:    analysis.IntensityPreferences.Optimal,
			AvoidancePatterns:   analysis.AvoidancePatterns,
			SuccessPatterns:     analysis.SuccessPatterns,
			TotalEvents:         analysis.TotalEvents,
		},
		RelationshipPhase: journey.ClassifyPhase(input.DaysTogether, analysis.OverallSatisfaction),
		PersonalityTraits: buildTraits(analysis),
		AdaptationSignals: buildSignals(analysis),
	}

	if input.Assignment != nil {
		profile.PrimaryArchetype = input.Assignment.Primary
		profile.SecondaryArchetype = input.Assignment.Secondary
		profile.ArchetypeConfidence = archetypeConfidence(input.Assignment.Scores)
	}

	if input.Engagement != nil {
		profile.Engagement = *input.Engagement
	}

	profile.FutureRecommendations = buildRecommendations(analysis, profile)

	return profile
}

// archetypeConfidence measures how decisively the primary archetype
// leads the quiz scores.
func archetypeConfidence(scores map[string]float64) float64 {
	var max, second float64
	for _, score := range scores {
		if score > max {
			second = max
			max = score
		} else if score > second {
			second = score
		}
	}
	if max == 0 {
		return neutralConfidence
	}
	return math.Min((max-second)/max+0.3, 1.0)
}

func topCategories(analysis *feedback.Analysis) []string {
	top := make([]string, 0, topCategoryCount)
	for _, pref := range analysis.CategoryPreferences {
		if len(top) == topCategoryCount {
			break
		}
		top = append(top, pref.Category)
	}
	return top
}

func buildTraits(analysis *feedback.Analysis) PersonalityTraits {
	prefs := analysis.IntensityPreferences

	expressiveness := neutralTrait
	if analysis.TotalEvents > 0 {
		expressiveness = float64(analysis.NotedEvents) / float64(analysis.TotalEvents)
	}

	return PersonalityTraits{
		Openness:        math.Min(float64(len(analysis.CategoryPreferences))/opennessDivisor, 1),
		Adventurousness: (prefs.Spicy + prefs.Wild) / 2,
		Expressiveness:  expressiveness,
	}
}

func buildSignals(analysis *feedback.Analysis) []string {
	signals := []string{}

	if len(analysis.CategoryPreferences) >= 5 {
		signals = append(signals, SignalNeedsVariety)
	}
	if len(analysis.AvoidancePatterns) > 0 || analysis.IntensityPreferences.Wild < 0.3 {
		signals = append(signals, SignalIntensitySensitive)
	}
	if analysis.OverallSatisfaction > 0.7 && len(analysis.CategoryPreferences) >= 3 {
		signals = append(signals, SignalNoveltyResponsive)
	}

	return signals
}

// buildRecommendations emits short rule-based pointers for the next
// rebuild cycle. The generative insights module produces the richer
// ones; these survive without any external call.
func buildRecommendations(analysis *feedback.Analysis, profile *ComprehensiveUserProfile) []string {
	recs := []string{}

	if analysis.TotalEvents < 5 {
		recs = append(recs, "Log a few more shared moments so your profile can sharpen.")
	}
	if len(profile.SuccessPatterns) > 0 {
		recs = append(recs, "Lean into what already works: repeat a favorite and vary one detail.")
	}
	if prefs := analysis.IntensityPreferences; prefs.Optimal == feedback.IntensitySweet || prefs.Optimal == feedback.IntensityFlirty {
		recs = append(recs, "When you both feel ready, try nudging one activity a step up in intensity.")
	}
	if len(analysis.CategoryPreferences) > 0 && len(analysis.CategoryPreferences) < 3 {
		recs = append(recs, "Branch out into a category you haven't explored together yet.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Keep doing what you're doing and check back after your next few activities.")
	}

	return recs
}
