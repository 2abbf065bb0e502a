package profile

import (
	"encoding/json"
	"time"
)

// Adaptation signals surfaced on the comprehensive profile
const (
	SignalNeedsVariety       = "needs_variety"
	SignalIntensitySensitive = "intensity_sensitive"
	SignalNoveltyResponsive  = "novelty_responsive"
)

// EngagementStats are session-level usage heuristics. They are computed
// by the analytics pipeline and passed in as an input; the builder
// never derives them from feedback events.
type EngagementStats struct {
	SessionsPerWeek    float64 `json:"sessions_per_week"`
	AvgSessionMinutes  float64 `json:"avg_session_minutes"`
	PreferredTimeOfDay string  `json:"preferred_time_of_day"`
}

// PersonalityTraits are heuristic scores in [0,1] derived from the
// feedback analysis.
type PersonalityTraits struct {
	Openness        float64 `json:"openness"`
	Adventurousness float64 `json:"adventurousness"`
	Expressiveness  float64 `json:"expressiveness"`
}

// UserPreferenceProfile is the persisted preference snapshot. One row
// per user, overwritten on every rebuild.
type UserPreferenceProfile struct {
	UserID              int64    `json:"user_id" db:"user_id"`
	PrimaryArchetype    string   `json:"primary_archetype" db:"primary_archetype"`
	SecondaryArchetype  *string  `json:"secondary_archetype,omitempty" db:"secondary_archetype"`
	ArchetypeConfidence float64  `json:"archetype_confidence" db:"archetype_confidence"`
	OverallSatisfaction float64  `json:"overall_satisfaction" db:"overall_satisfaction"`
	TopCategories       []string `json:"top_categories" db:"-"`
	OptimalIntensity    string   `json:"optimal_intensity" db:"optimal_intensity"`
	AvoidancePatterns   []string `json:"avoidance_patterns" db:"-"`
	SuccessPatterns     []string `json:"success_patterns" db:"-"`
	TotalEvents         int      `json:"total_events" db:"total_events"`
}

// ComprehensiveUserProfile is the superset snapshot returned to
// clients and stored alongside the base fields.
type ComprehensiveUserProfile struct {
	UserPreferenceProfile

	RelationshipPhase     string            `json:"relationship_phase" db:"relationship_phase"`
	PersonalityTraits     PersonalityTraits `json:"personality_traits" db:"-"`
	AdaptationSignals     []string          `json:"adaptation_signals" db:"-"`
	FutureRecommendations []string          `json:"future_recommendations" db:"-"`
	Engagement            EngagementStats   `json:"engagement" db:"-"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// JSONB columns backing the slice/struct fields above
	RawTopCategories         json.RawMessage `json:"-" db:"top_categories"`
	RawAvoidancePatterns     json.RawMessage `json:"-" db:"avoidance_patterns"`
	RawSuccessPatterns       json.RawMessage `json:"-" db:"success_patterns"`
	RawPersonalityTraits     json.RawMessage `json:"-" db:"personality_traits"`
	RawAdaptationSignals     json.RawMessage `json:"-" db:"adaptation_signals"`
	RawFutureRecommendations json.RawMessage `json:"-" db:"future_recommendations"`
	RawEngagement            json.RawMessage `json:"-" db:"engagement"`
}
