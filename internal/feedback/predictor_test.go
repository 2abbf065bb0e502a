package feedback

import "testing"

func analysisWith(category string, satisfaction float64, frequency int, intensityRatios map[string]float64) *Analysis {
	prefs := defaultIntensityPreferences()
	for intensity, ratio := range intensityRatios {
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
	}

	return &Analysis{
		TotalEvents:         frequency,
		OverallSatisfaction: satisfaction,
		CategoryPreferences: []*CategoryPreference{
			{Category: category, Satisfaction: satisfaction, Frequency: frequency, Effectiveness: satisfaction},
		},
		IntensityPreferences: prefs,
	}
}

func TestPredictLowFrequency(t *testing.T) {
	analysis := analysisWith("touch", 1.0, 3, nil)

	prediction := Predict(analysis, "touch", IntensitySpicy)
	if prediction.Label != LabelTried {
		t.Errorf("label = %q, want tried regardless of satisfaction", prediction.Label)
	}
	if prediction.Confidence > 0.5 {
		t.Errorf("confidence = %v, must not exceed 0.5 with frequency 3", prediction.Confidence)
	}
	// 3/20
	if prediction.Confidence != 0.15 {
		t.Errorf("confidence = %v, want 0.15", prediction.Confidence)
	}
}

func TestPredictUnseenCategory(t *testing.T) {
	analysis := BuildAnalysis(nil)

	prediction := Predict(analysis, "never_tried", IntensitySweet)
	if prediction.Label != LabelTried {
		t.Errorf("label = %q, want tried for an unseen category", prediction.Label)
	}
	if prediction.Confidence != 0 {
		t.Errorf("confidence = %v, want 0 with zero frequency", prediction.Confidence)
	}
}

func TestPredictLoved(t *testing.T) {
	analysis := analysisWith("touch", 0.9, 20, map[string]float64{IntensitySpicy: 0.9})

	prediction := Predict(analysis, "touch", IntensitySpicy)
	if prediction.Label != LabelLoved {
		t.Errorf("label = %q, want loved", prediction.Label)
	}
	if prediction.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", prediction.Confidence)
	}
}

func TestPredictConfidenceCapsAtPointNine(t *testing.T) {
	analysis := analysisWith("touch", 0.9, 100, map[string]float64{IntensitySweet: 0.9})

	prediction := Predict(analysis, "touch", IntensitySweet)
	if prediction.Confidence != 0.9 {
		t.Errorf("confidence = %v, want cap 0.9", prediction.Confidence)
	}
}

func TestPredictNotForUs(t *testing.T) {
	// Low category satisfaction alone is enough
	analysis := analysisWith("words", 0.2, 10, map[string]float64{IntensitySweet: 0.8})
	if got := Predict(analysis, "words", IntensitySweet).Label; got != LabelNotForUs {
		t.Errorf("label = %q, want not_for_us on low category satisfaction", got)
	}

	// Low intensity satisfaction alone is enough too
	analysis = analysisWith("words", 0.8, 10, map[string]float64{IntensityWild: 0.1})
	if got := Predict(analysis, "words", IntensityWild).Label; got != LabelNotForUs {
		t.Errorf("label = %q, want not_for_us on low intensity satisfaction", got)
	}
}

func TestPredictMiddlingStaysTried(t *testing.T) {
	analysis := analysisWith("words", 0.5, 10, map[string]float64{IntensityFlirty: 0.5})

	prediction := Predict(analysis, "words", IntensityFlirty)
	if prediction.Label != LabelTried {
		t.Errorf("label = %q, want tried for middling signals", prediction.Label)
	}
	if prediction.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 10/20", prediction.Confidence)
	}
}

func TestPredictBoundaryThresholds(t *testing.T) {
	// Exactly 0.7 category satisfaction is not loved
	analysis := analysisWith("touch", 0.7, 20, map[string]float64{IntensitySweet: 0.9})
	if got := Predict(analysis, "touch", IntensitySweet).Label; got != LabelTried {
		t.Errorf("label = %q, want tried at exactly 0.7 category satisfaction", got)
	}

	// Exactly 0.3 satisfaction is not not_for_us
	analysis = analysisWith("touch", 0.3, 20, map[string]float64{IntensitySweet: 0.3})
	if got := Predict(analysis, "touch", IntensitySweet).Label; got != LabelTried {
		t.Errorf("label = %q, want tried at exactly 0.3", got)
	}

	// Frequency 5 leaves the low-data branch
	analysis = analysisWith("touch", 0.9, 5, map[string]float64{IntensitySweet: 0.9})
	prediction := Predict(analysis, "touch", IntensitySweet)
	if prediction.Label != LabelLoved {
		t.Errorf("label = %q, want loved at frequency 5", prediction.Label)
	}
	if prediction.Confidence != 0.25 {
		t.Errorf("confidence = %v, want 5/20", prediction.Confidence)
	}
}
