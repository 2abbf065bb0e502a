package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/emberlyhq/emberly-backend/internal/archetype"
	"github.com/emberlyhq/emberly-backend/internal/profile"
)

type stubProfileService struct {
	profile *profile.ComprehensiveUserProfile
	err     error
}

func (s *stubProfileService) BuildProfile(ctx context.Context, userID int64) (*profile.ComprehensiveUserProfile, error) {
	return s.profile, s.err
}

func (s *stubProfileService) GetProfile(ctx context.Context, userID int64) (*profile.ComprehensiveUserProfile, error) {
	return s.profile, s.err
}

func kinkyProfile() *profile.ComprehensiveUserProfile {
	return &profile.ComprehensiveUserProfile{
		UserPreferenceProfile: profile.UserPreferenceProfile{
			UserID:           1,
			PrimaryArchetype: archetype.Kinky,
			TopCategories:    []string{"touch", "words"},
			OptimalIntensity: "spicy",
		},
		RelationshipPhase: "building",
	}
}

func TestSuggestionsFromGenerator(t *testing.T) {
	generator := &MockTextGenerator{
		Reply: `[{"text": "Try this", "category": "touch", "intensity": "spicy", "confidence": 0.8, "reasoning": "fits your pattern"}]`,
	}
	svc := NewService(generator, &stubProfileService{profile: kinkyProfile()})

	suggestions, err := svc.GetPersonalizedSuggestions(context.Background(), 1, "", 3)
	if err != nil {
		t.Fatalf("GetPersonalizedSuggestions failed: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Text != "Try this" {
		t.Fatalf("unexpected suggestions: %+v", suggestions)
	}
}

func TestSuggestionsFallBackOnGeneratorError(t *testing.T) {
	generator := &MockTextGenerator{Err: errors.New("upstream down")}
	svc := NewService(generator, &stubProfileService{profile: kinkyProfile()})

	suggestions, err := svc.GetPersonalizedSuggestions(context.Background(), 1, "", 3)
	if err != nil {
		t.Fatalf("generator failure must not surface: %v", err)
	}
	if len(suggestions) == 0 {
		t.Fatal("fallback must never be empty")
	}
}

func TestSuggestionsFallBackOnGarbageReply(t *testing.T) {
	generator := &MockTextGenerator{Reply: "I can't produce JSON today, sorry!"}
	svc := NewService(generator, &stubProfileService{profile: kinkyProfile()})

	suggestions, err := svc.GetPersonalizedSuggestions(context.Background(), 1, "", 3)
	if err != nil {
		t.Fatalf("parse failure must not surface: %v", err)
	}
	if len(suggestions) == 0 {
		t.Fatal("fallback must never be empty")
	}
	// Fallback should reflect the user's archetype table
	want := FallbackSuggestions(archetype.Kinky, "", 3)
	if suggestions[0].Text != want[0].Text {
		t.Errorf("expected kinky fallback entry, got %q", suggestions[0].Text)
	}
}

func TestSuggestionsCountBounds(t *testing.T) {
	many := `[
        {"text": "a", "category": "c", "intensity": "sweet", "confidence": 0.5, "reasoning": "r"},
        {"text": "b", "category": "c", "intensity": "sweet", "confidence": 0.5, "reasoning": "r"},
        {"text": "c", "category": "c", "intensity": "sweet", "confidence": 0.5, "reasoning": "r"},
        {"text": "d", "category": "c", "intensity": "sweet", "confidence": 0.5, "reasoning": "r"},
        {"text": "e", "category": "c", "intensity": "sweet", "confidence": 0.5, "reasoning": "r"}
    ]`
	svc := NewService(&MockTextGenerator{Reply: many}, &stubProfileService{profile: kinkyProfile()})

	// Zero count uses the default of 3
	suggestions, err := svc.GetPersonalizedSuggestions(context.Background(), 1, "", 0)
	if err != nil {
		t.Fatalf("GetPersonalizedSuggestions failed: %v", err)
	}
	if len(suggestions) != 3 {
		t.Errorf("default count = %d, want 3", len(suggestions))
	}

	suggestions, err = svc.GetPersonalizedSuggestions(context.Background(), 1, "", 2)
	if err != nil {
		t.Fatalf("GetPersonalizedSuggestions failed: %v", err)
	}
	if len(suggestions) != 2 {
		t.Errorf("explicit count = %d, want 2", len(suggestions))
	}
}

func TestFallbackCategoryFilter(t *testing.T) {
	filtered := FallbackSuggestions(archetype.Sensual, "touch", 5)
	if len(filtered) == 0 {
		t.Fatal("filtered fallback must not be empty")
	}
	for _, entry := range filtered {
		if entry.Category != "touch" {
			t.Errorf("expected only touch entries, got %q", entry.Category)
		}
	}

	// No matching category falls back to the unfiltered table
	unmatched := FallbackSuggestions(archetype.Sensual, "no_such_category", 5)
	if len(unmatched) == 0 {
		t.Fatal("unmatched category filter must not empty the fallback")
	}

	// Unknown archetype uses the default table
	unknown := FallbackSuggestions("", "", 5)
	if len(unknown) == 0 {
		t.Fatal("default fallback must not be empty")
	}
}
