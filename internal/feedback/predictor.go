// internal/feedback/predictor.go
// Rule-based response predictor over a computed Analysis.

package feedback

import (
	"fmt"
	"math"
)

// Prediction thresholds. These values are load-bearing: clients tune
// their UI copy against them.
const (
	minFrequencyForPrediction = 5
	confidenceDivisor         = 20.0
	maxConfidence             = 0.9
	lowDataMaxConfidence      = 0.5

	lovedCategoryThreshold  = 0.7
	lovedIntensityThreshold = 0.6
	avoidThreshold          = 0.3
)

// Predict classifies the likely reaction to a (category, intensity)
// candidate the user has not tried. Pure function of the analysis.
func Predict(analysis *Analysis, category, intensity string) *Prediction {
	pref := analysis.Category(category)

	frequency := 0
	if pref != nil {
		frequency = pref.Frequency
	}

	if frequency < minFrequencyForPrediction {
		return &Prediction{
			Label:      LabelTried,
			Confidence: math.Min(float64(frequency)/confidenceDivisor, lowDataMaxConfidence),
			Reasoning:  fmt.Sprintf("insufficient data for %q to predict a strong reaction", category),
		}
	}

	confidence := math.Min(float64(frequency)/confidenceDivisor, maxConfidence)
	categorySatisfaction := pref.Satisfaction
	intensitySatisfaction := analysis.IntensityPreferences.Ratio(normalizeIntensity(intensity))

	switch {
	case categorySatisfaction > lovedCategoryThreshold && intensitySatisfaction > lovedIntensityThreshold:
		return &Prediction{
			Label:      LabelLoved,
			Confidence: confidence,
			Reasoning: fmt.Sprintf("%q has a %.0f%% satisfaction rate and %s suggestions land well",
				category, categorySatisfaction*100, intensity),
		}
	case categorySatisfaction < avoidThreshold || intensitySatisfaction < avoidThreshold:
		return &Prediction{
			Label:      LabelNotForUs,
			Confidence: confidence,
			Reasoning: fmt.Sprintf("past feedback on %q or %s suggestions has been mostly negative",
				category, intensity),
		}
	}

	return &Prediction{
		Label:      LabelTried,
		Confidence: confidence,
		Reasoning:  fmt.Sprintf("mixed history for %q at %s intensity; worth trying", category, intensity),
	}
}
