package insights

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the structured context into the collaborator
// prompt. The reply contract is a JSON array of suggestion objects;
// anything else triggers the fallback table downstream.
func BuildPrompt(pc *PromptContext) string {
	var b strings.Builder

	b.WriteString("You are a relationship coach for a couples app. ")
	b.WriteString("Suggest activities a couple can do together based on their profile.\n\n")

	if pc.PrimaryArchetype != "" {
		b.WriteString("Primary intimacy style: " + pc.PrimaryArchetype + "\n")
	}
	if pc.SecondaryArchetype != "" {
		b.WriteString("Secondary intimacy style: " + pc.SecondaryArchetype + "\n")
	}
	if pc.RelationshipPhase != "" {
		b.WriteString("Relationship phase: " + pc.RelationshipPhase + "\n")
	}
	if len(pc.TopCategories) > 0 {
		b.WriteString("Favorite categories: " + strings.Join(pc.TopCategories, ", ") + "\n")
	}
	if pc.OptimalIntensity != "" {
		b.WriteString("Preferred intensity: " + pc.OptimalIntensity + "\n")
	}
	if len(pc.SuccessPatterns) > 0 {
		b.WriteString("What has worked repeatedly: " + strings.Join(pc.SuccessPatterns, ", ") + "\n")
	}
	if len(pc.AvoidancePatterns) > 0 {
		b.WriteString("Avoid suggestions like: " + strings.Join(pc.AvoidancePatterns, ", ") + "\n")
	}
	if pc.CategoryFilter != "" {
		b.WriteString("Only suggest activities in the category: " + pc.CategoryFilter + "\n")
	}

	fmt.Fprintf(&b, "\nReply with ONLY a JSON array of exactly %d objects, each shaped like:\n", pc.Count)
	b.WriteString(`[{"text": "...", "category": "...", "intensity": "sweet|flirty|spicy|wild", "confidence": 0.0, "reasoning": "..."}]`)
	b.WriteString("\nNo prose before or after the array.")

	return b.String()
}
