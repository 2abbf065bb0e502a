package insights

// Suggestion is one qualitative recommendation, either parsed from the
// generative collaborator or drawn from the static fallback table.
type Suggestion struct {
	Text       string  `json:"text"`
	Category   string  `json:"category"`
	Intensity  string  `json:"intensity"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// PromptContext is the structured context packaged for the generative
// collaborator.
type PromptContext struct {
	PrimaryArchetype   string
	SecondaryArchetype string
	TopCategories      []string
	OptimalIntensity   string
	AvoidancePatterns  []string
	SuccessPatterns    []string
	RelationshipPhase  string
	CategoryFilter     string
	Count              int
}
