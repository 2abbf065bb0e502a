// internal/feedback/dto.go
package feedback

// DTOs for API requests/responses

// SubmitFeedbackDTO carries one feedback submission. Category and the
// enum-ish fields are deliberately not restricted with oneof: clients
// ship new tags faster than the backend, and unknown values degrade to
// "unknown" buckets during analysis instead of losing the event.
type SubmitFeedbackDTO struct {
	SuggestionID   string `json:"suggestion_id" validate:"required,max=100"`
	SuggestionType string `json:"suggestion_type,omitempty" validate:"omitempty,max=50"`
	Category       string `json:"category" validate:"required,max=100"`
	Intensity      string `json:"intensity" validate:"required,max=20"`
	Label          string `json:"label" validate:"required,max=30"`
	Outcome        string `json:"outcome,omitempty" validate:"omitempty,oneof=successful mixed unsuccessful"`
	Notes          string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	PartnerNotes   string `json:"partner_notes,omitempty" validate:"omitempty,max=2000"`
}

// PredictRequestDTO asks for the likely reaction to a candidate pair.
type PredictRequestDTO struct {
	Category  string `json:"category" validate:"required,max=100"`
	Intensity string `json:"intensity" validate:"required,max=20"`
}

// SubmitFeedbackResponse returns the minted event ID.
type SubmitFeedbackResponse struct {
	EventID string `json:"event_id"`
}
