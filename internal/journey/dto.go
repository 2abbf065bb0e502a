// internal/journey/dto.go
package journey

// DTOs for API requests/responses

// CreateMilestoneDTO turns a detection into a persisted milestone. The
// detection fields are echoed back by the client; the type is what
// dedupe keys on.
type CreateMilestoneDTO struct {
	Type         string           `json:"type" validate:"required,max=50"`
	Title        string           `json:"title" validate:"required,max=200"`
	Description  string           `json:"description" validate:"required,max=2000"`
	Confidence   float64          `json:"confidence" validate:"gte=0,lte=1"`
	Significance string           `json:"significance" validate:"required,oneof=high medium low"`
	Context      MilestoneContext `json:"context"`
	Notes        string           `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// CelebrateMilestoneDTO carries optional celebration notes.
type CelebrateMilestoneDTO struct {
	Notes string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// CreateMilestoneResponse returns the persisted milestone ID.
type CreateMilestoneResponse struct {
	MilestoneID int64 `json:"milestone_id"`
}
