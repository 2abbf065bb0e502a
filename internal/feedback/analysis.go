// internal/feedback/analysis.go
// The feedback aggregator: turns an event history into an Analysis.
// Pure computation, no side effects, never errors on malformed data.

package feedback

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Minimum repeat count before a (category, intensity) pair counts as
// an avoidance or success pattern.
const patternThreshold = 2

// BuildAnalysis computes the statistical summary for a list of events.
// Events should be ordered oldest first; ties in the sorted outputs
// keep first-seen order. Malformed fields degrade to "unknown" buckets
// rather than failing.
func BuildAnalysis(events []*Event) *Analysis {
	analysis := &Analysis{
		TotalEvents:          len(events),
		OverallSatisfaction:  NeutralSatisfaction,
		CategoryPreferences:  []*CategoryPreference{},
		TimingPatterns:       []*TimingPattern{},
		IntensityPreferences: defaultIntensityPreferences(),
		AvoidancePatterns:    []string{},
		SuccessPatterns:      []string{},
	}

	if len(events) == 0 {
		return analysis
	}

	type bucket struct {
		total    int
		positive int
	}

	positives := 0
	categories := map[string]*bucket{}
	categoryOrder := []string{}
	timings := map[string]*bucket{}
	timingOrder := []string{}
	intensities := map[string]*bucket{}
	negativePairs := map[string]int{}
	lovedPairs := map[string]int{}
	seenPairs := map[string]bool{}
	pairOrder := []string{}

	for _, event := range events {
		label := normalizeLabel(event.Label)
		positive := label == LabelLoved || label == LabelTried

		if positive {
			positives++
		}
		if event.Notes != nil && *event.Notes != "" {
			analysis.NotedEvents++
		}

		// Category grouping. Free-form tags are kept as-is; an empty
		// category degrades to the unknown bucket.
		category := event.Category
		if category == "" {
			category = "unknown"
		}
		if _, ok := categories[category]; !ok {
			categories[category] = &bucket{}
			categoryOrder = append(categoryOrder, category)
		}
		categories[category].total++
		if positive {
			categories[category].positive++
		}

		// Timing grouping by (time of day, day of week)
		timeOfDay := normalizeTimeOfDay(event.TimeOfDay)
		dayOfWeek := event.DayOfWeek
		if dayOfWeek < 0 || dayOfWeek > 6 {
			dayOfWeek = -1
		}
		timingKey := fmt.Sprintf("%s|%d", timeOfDay, dayOfWeek)
		if _, ok := timings[timingKey]; !ok {
			timings[timingKey] = &bucket{}
			timingOrder = append(timingOrder, timingKey)
		}
		timings[timingKey].total++
		if positive {
			timings[timingKey].positive++
		}

		// Intensity grouping. Unrecognized intensities are excluded
		// from the four ratio buckets but still count everywhere else.
		intensity := normalizeIntensity(event.Intensity)
		if intensity != IntensityUnknown {
			if _, ok := intensities[intensity]; !ok {
				intensities[intensity] = &bucket{}
			}
			intensities[intensity].total++
			if positive {
				intensities[intensity].positive++
			}
		}

		// Repeat-pattern tracking per (category, intensity) pair
		pairKey := category + "_" + intensity
		if !seenPairs[pairKey] {
			seenPairs[pairKey] = true
			pairOrder = append(pairOrder, pairKey)
		}
		if label == LabelNotForUs || label == LabelTooIntense {
			negativePairs[pairKey]++
		}
		if label == LabelLoved {
			lovedPairs[pairKey]++
		}
	}

	analysis.OverallSatisfaction = float64(positives) / float64(len(events))

	// Category preferences sorted by satisfaction, first-seen on ties
	for _, category := range categoryOrder {
		b := categories[category]
		satisfaction := float64(b.positive) / float64(b.total)
		analysis.CategoryPreferences = append(analysis.CategoryPreferences, &CategoryPreference{
			Category:      category,
			Satisfaction:  satisfaction,
			Frequency:     b.total,
			Effectiveness: satisfaction,
		})
	}
	sort.SliceStable(analysis.CategoryPreferences, func(i, j int) bool {
		return analysis.CategoryPreferences[i].Satisfaction > analysis.CategoryPreferences[j].Satisfaction
	})

	// Timing patterns sorted by success rate
	for _, key := range timingOrder {
		b := timings[key]
		timeOfDay, dayOfWeek := splitTimingKey(key)
		analysis.TimingPatterns = append(analysis.TimingPatterns, &TimingPattern{
			TimeOfDay:   timeOfDay,
			DayOfWeek:   dayOfWeek,
			SuccessRate: float64(b.positive) / float64(b.total),
			Occurrences: b.total,
		})
	}
	sort.SliceStable(analysis.TimingPatterns, func(i, j int) bool {
		return analysis.TimingPatterns[i].SuccessRate > analysis.TimingPatterns[j].SuccessRate
	})

	// Intensity preferences: ratio per bucket, 0.5 default for empty
	// buckets, optimal picked by highest ratio with sweet < flirty <
	// spicy < wild order breaking ties.
	prefs := defaultIntensityPreferences()
	bestRatio := -1.0
	for _, intensity := range intensityOrder {
		ratio := NeutralIntensityRatio
		if b, ok := intensities[intensity]; ok && b.total > 0 {
			ratio = float64(b.positive) / float64(b.total)
		}
		switch intensity {
		case IntensitySweet:
			prefs.Sweet = ratio
		case IntensityFlirty:
			prefs.Flirty = ratio
		case IntensitySpicy:
			prefs.Spicy = ratio
		case IntensityWild:
			prefs.Wild = ratio
		}
		if ratio > bestRatio {
			bestRatio = ratio
			prefs.Optimal = intensity
		}
	}
	analysis.IntensityPreferences = prefs

	// Repeated-feedback patterns in first-seen order
	for _, pairKey := range pairOrder {
		if negativePairs[pairKey] >= patternThreshold {
			analysis.AvoidancePatterns = append(analysis.AvoidancePatterns, pairKey)
		}
		if lovedPairs[pairKey] >= patternThreshold {
			analysis.SuccessPatterns = append(analysis.SuccessPatterns, pairKey)
		}
	}

	return analysis
}

// defaultIntensityPreferences is the no-data answer: neutral ratios
// and flirty as the documented default optimal intensity.
func defaultIntensityPreferences() *IntensityPreferences {
	return &IntensityPreferences{
		Sweet:   NeutralIntensityRatio,
		Flirty:  NeutralIntensityRatio,
		Spicy:   NeutralIntensityRatio,
		Wild:    NeutralIntensityRatio,
		Optimal: DefaultOptimalIntensity,
	}
}

func normalizeLabel(label string) string {
	switch label {
	case LabelLoved, LabelTried, LabelNotForUs, LabelMaybeLater, LabelTooIntense, LabelNotEnough:
		return label
	}
	return LabelUnknown
}

func normalizeIntensity(intensity string) string {
	switch intensity {
	case IntensitySweet, IntensityFlirty, IntensitySpicy, IntensityWild:
		return intensity
	}
	return IntensityUnknown
}

func normalizeTimeOfDay(timeOfDay string) string {
	switch timeOfDay {
	case TimeMorning, TimeAfternoon, TimeEvening, TimeNight:
		return timeOfDay
	}
	return TimeUnknown
}

// TimeOfDayBucket maps an hour (0-23) to its bucket.
func TimeOfDayBucket(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return TimeMorning
	case hour >= 12 && hour < 17:
		return TimeAfternoon
	case hour >= 17 && hour < 22:
		return TimeEvening
	case hour >= 0 && hour < 24:
		return TimeNight
	}
	return TimeUnknown
}

func splitTimingKey(key string) (string, int) {
	parts := strings.SplitN(key, "|", 2)
	if len(parts) != 2 {
		return TimeUnknown, -1
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		day = -1
	}
	return parts[0], day
}
