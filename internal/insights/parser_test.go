package insights

import (
	"errors"
	"testing"
)

func TestParseSuggestionsBareArray(t *testing.T) {
	reply := `[{"text": "Cook together", "category": "romance", "intensity": "sweet", "confidence": 0.8, "reasoning": "shared rituals"}]`

	suggestions, err := ParseSuggestions(reply, "flirty")
	if err != nil {
		t.Fatalf("ParseSuggestions failed: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].Text != "Cook together" || suggestions[0].Intensity != "sweet" {
		t.Errorf("unexpected suggestion: %+v", suggestions[0])
	}
}

func TestParseSuggestionsEmbeddedInProse(t *testing.T) {
	reply := "Sure! Here are some ideas for you both:\n\n```json\n" +
		`[{"text": "Take a walk", "category": "adventure", "intensity": "sweet", "confidence": 0.7, "reasoning": "fresh air"},` +
		`{"text": "Write a note", "category": "words", "intensity": "flirty", "confidence": 0.6, "reasoning": "small gestures"}]` +
		"\n```\n\nHave fun!"

	suggestions, err := ParseSuggestions(reply, "flirty")
	if err != nil {
		t.Fatalf("ParseSuggestions failed: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
}

func TestParseSuggestionsNormalizesEntries(t *testing.T) {
	reply := `[
        {"text": "A", "category": "touch", "intensity": "volcanic", "confidence": 1.7, "reasoning": "r"},
        {"text": "", "category": "touch", "intensity": "sweet", "confidence": 0.5, "reasoning": "dropped"},
        {"text": "B", "category": "words", "intensity": "wild", "confidence": -0.2, "reasoning": "r"}
    ]`

	suggestions, err := ParseSuggestions(reply, "flirty")
	if err != nil {
		t.Fatalf("ParseSuggestions failed: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected empty-text entry dropped, got %d suggestions", len(suggestions))
	}
	if suggestions[0].Intensity != "flirty" {
		t.Errorf("unknown intensity should fall back to the default, got %q", suggestions[0].Intensity)
	}
	if suggestions[0].Confidence != 1 {
		t.Errorf("confidence should clamp to 1, got %v", suggestions[0].Confidence)
	}
	if suggestions[1].Confidence != 0 {
		t.Errorf("confidence should clamp to 0, got %v", suggestions[1].Confidence)
	}
}

func TestParseSuggestionsMalformedReplies(t *testing.T) {
	replies := []string{
		"",
		"I'd love to help but I can't format that right now.",
		"[not json at all]",
		`{"text": "an object, not an array"}`,
		"[]",
		`[{"category": "touch"}]`,
	}

	for _, reply := range replies {
		if _, err := ParseSuggestions(reply, "flirty"); !errors.Is(err, ErrNoSuggestions) {
			t.Errorf("reply %q: expected ErrNoSuggestions, got %v", reply, err)
		}
	}
}

func TestExtractJSONArraySkipsBracketsInStrings(t *testing.T) {
	reply := `[{"text": "use [brackets] freely", "category": "words", "intensity": "sweet", "confidence": 0.5, "reasoning": "r"}]`

	suggestions, err := ParseSuggestions(reply, "flirty")
	if err != nil {
		t.Fatalf("ParseSuggestions failed: %v", err)
	}
	if suggestions[0].Text != "use [brackets] freely" {
		t.Errorf("bracket-containing string mangled: %q", suggestions[0].Text)
	}
}
