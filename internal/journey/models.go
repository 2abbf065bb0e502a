package journey

import (
	"encoding/json"
	"time"
)

// Milestone significance levels
const (
	SignificanceHigh   = "high"
	SignificanceMedium = "medium"
	SignificanceLow    = "low"
)

// MilestoneContext carries the evidence behind a detection and how to
// celebrate it.
type MilestoneContext struct {
	TriggerEvents         []string `json:"trigger_events,omitempty"`
	GrowthAreas           []string `json:"growth_areas,omitempty"`
	CelebrationSuggestion string   `json:"celebration_suggestion,omitempty"`
}

// Detection is an ephemeral milestone candidate. Nothing is persisted
// until a detection is explicitly turned into a Milestone.
type Detection struct {
	Type         string           `json:"type"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Confidence   float64          `json:"confidence"`
	Significance string           `json:"significance"`
	Context      MilestoneContext `json:"context"`
}

// Milestone is a persisted relationship achievement. The core fields
// are immutable once created; only celebrated/celebration_notes change.
type Milestone struct {
	ID               int64            `json:"id" db:"id"`
	UserID           int64            `json:"user_id" db:"user_id"`
	Type             string           `json:"type" db:"type"`
	Title            string           `json:"title" db:"title"`
	Description      string           `json:"description" db:"description"`
	Significance     string           `json:"significance" db:"significance"`
	Context          MilestoneContext `json:"context" db:"-"`
	Celebrated       bool             `json:"celebrated" db:"celebrated"`
	CelebrationNotes *string          `json:"celebration_notes,omitempty" db:"celebration_notes"`
	AchievedAt       time.Time        `json:"achieved_at" db:"achieved_at"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`

	RawContext json.RawMessage `json:"-" db:"context"`
}

// GrowthMetrics are the heuristic journey scores.
type GrowthMetrics struct {
	CommunicationScore float64 `json:"communication_score"`
	IntimacyScore      float64 `json:"intimacy_score"`
	EngagementScore    float64 `json:"engagement_score"`
	OverallTrend       string  `json:"overall_trend"`
	WeeklyChange       float64 `json:"weekly_change"`
}

// UpcomingMilestone hints at what the couple is close to earning.
type UpcomingMilestone struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Hint  string `json:"hint"`
}

// Analytics is the full journey report.
type Analytics struct {
	CurrentPhase       string               `json:"current_phase"`
	DaysTogether       int                  `json:"days_together"`
	MilestoneCount     int                  `json:"milestone_count"`
	Milestones         []*Milestone         `json:"milestones"`
	GrowthMetrics      *GrowthMetrics       `json:"growth_metrics"`
	OverallProgress    int                  `json:"overall_progress"`
	UpcomingMilestones []*UpcomingMilestone `json:"upcoming_milestones"`
}
