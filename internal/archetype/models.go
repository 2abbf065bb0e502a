package archetype

import (
	"encoding/json"
	"time"
)

// The five intimacy blueprints assigned by the quiz scorer.
const (
	Energetic    = "energetic"
	Sensual      = "sensual"
	Sexual       = "sexual"
	Kinky        = "kinky"
	Shapeshifter = "shapeshifter"
)

// All lists the valid archetype names in canonical order.
var All = []string{Energetic, Sensual, Sexual, Kinky, Shapeshifter}

// Valid reports whether name is a known archetype.
func Valid(name string) bool {
	for _, a := range All {
		if a == name {
			return true
		}
	}
	return false
}

// Assignment is the result produced by the upstream quiz-scoring
// subsystem. This service stores and reads it but never computes it.
type Assignment struct {
	UserID      int64              `json:"user_id" db:"user_id"`
	Primary     string             `json:"primary" db:"primary_archetype"`
	Secondary   *string            `json:"secondary,omitempty" db:"secondary_archetype"`
	Scores      map[string]float64 `json:"scores" db:"-"`
	CompletedAt time.Time          `json:"completed_at" db:"completed_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`

	RawScores json.RawMessage `json:"-" db:"scores"`
}

// SecondaryOrEmpty returns the secondary archetype or ""
func (a *Assignment) SecondaryOrEmpty() string {
	if a == nil || a.Secondary == nil {
		return ""
	}
	return *a.Secondary
}
