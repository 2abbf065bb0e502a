package feedback

import (
	"time"
)

// Intensity buckets, ordered. The order is also the tie-break order
// when picking the optimal intensity.
const (
	IntensitySweet  = "sweet"
	IntensityFlirty = "flirty"
	IntensitySpicy  = "spicy"
	IntensityWild   = "wild"

	IntensityUnknown = "unknown"
)

var intensityOrder = []string{IntensitySweet, IntensityFlirty, IntensitySpicy, IntensityWild}

// Feedback labels
const (
	LabelLoved      = "loved"
	LabelTried      = "tried"
	LabelNotForUs   = "not_for_us"
	LabelMaybeLater = "maybe_later"
	LabelTooIntense = "too_intense"
	LabelNotEnough  = "not_enough"

	LabelUnknown = "unknown"
)

// Outcome values
const (
	OutcomeSuccessful   = "successful"
	OutcomeMixed        = "mixed"
	OutcomeUnsuccessful = "unsuccessful"
)

// Time-of-day buckets derived from the submission timestamp
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeNight     = "night"

	TimeUnknown = "unknown"
)

// Defaults returned when there is no data to aggregate
const (
	NeutralSatisfaction      = 0.7
	NeutralIntensityRatio    = 0.5
	DefaultOptimalIntensity  = IntensityFlirty
)

// Event is one immutable record of a user's reaction to a suggested
// activity. Events are append-only: created once, never mutated.
type Event struct {
	ID             string    `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	SuggestionID   string    `json:"suggestion_id" db:"suggestion_id"`
	SuggestionType string    `json:"suggestion_type" db:"suggestion_type"`
	Category       string    `json:"category" db:"category"`
	Intensity      string    `json:"intensity" db:"intensity"`
	Label          string    `json:"label" db:"label"`
	Outcome        *string   `json:"outcome,omitempty" db:"outcome"`
	Notes          *string   `json:"notes,omitempty" db:"notes"`
	PartnerNotes   *string   `json:"partner_notes,omitempty" db:"partner_notes"`
	TimeOfDay      string    `json:"time_of_day" db:"time_of_day"`
	DayOfWeek      int       `json:"day_of_week" db:"day_of_week"` // 0-6, -1 unknown
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// CategoryPreference summarizes one category's feedback history.
// Effectiveness mirrors satisfaction today but is kept as its own
// field so the two can diverge later.
type CategoryPreference struct {
	Category      string  `json:"category"`
	Satisfaction  float64 `json:"satisfaction"`
	Frequency     int     `json:"frequency"`
	Effectiveness float64 `json:"effectiveness"`
}

// TimingPattern summarizes success by (time of day, day of week).
type TimingPattern struct {
	TimeOfDay   string  `json:"time_of_day"`
	DayOfWeek   int     `json:"day_of_week"`
	SuccessRate float64 `json:"success_rate"`
	Occurrences int     `json:"occurrences"`
}

// IntensityPreferences holds the satisfaction ratio per bucket and
// the bucket the user responds best to.
type IntensityPreferences struct {
	Sweet   float64 `json:"sweet"`
	Flirty  float64 `json:"flirty"`
	Spicy   float64 `json:"spicy"`
	Wild    float64 `json:"wild"`
	Optimal string  `json:"optimal"`
}

// Ratio returns the satisfaction ratio for a bucket, defaulting for
// unknown bucket names.
func (p *IntensityPreferences) Ratio(intensity string) float64 {
	switch intensity {
	case IntensitySweet:
		return p.Sweet
	case IntensityFlirty:
		return p.Flirty
	case IntensitySpicy:
		return p.Spicy
	case IntensityWild:
		return p.Wild
	}
	return NeutralIntensityRatio
}

// Analysis is the derived statistical summary of a user's feedback
// history. It is recomputed from the event list on every query and is
// a pure function of its input: identical events produce an identical
// analysis.
type Analysis struct {
	TotalEvents          int                   `json:"total_events"`
	NotedEvents          int                   `json:"noted_events"`
	OverallSatisfaction  float64               `json:"overall_satisfaction"`
	CategoryPreferences  []*CategoryPreference `json:"category_preferences"`
	TimingPatterns       []*TimingPattern      `json:"timing_patterns"`
	IntensityPreferences *IntensityPreferences `json:"intensity_preferences"`
	AvoidancePatterns    []string              `json:"avoidance_patterns"`
	SuccessPatterns      []string              `json:"success_patterns"`
}

// Category returns the preference record for a category, or nil.
func (a *Analysis) Category(name string) *CategoryPreference {
	for _, pref := range a.CategoryPreferences {
		if pref.Category == name {
			return pref
		}
	}
	return nil
}

// Prediction is the predictor's classification of a not-yet-tried
// (category, intensity) candidate.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}
