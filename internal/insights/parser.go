// internal/insights/parser.go
// Extracts structured suggestions from a free-text completion. The
// collaborator is asked for a bare JSON array but routinely wraps it
// in prose or code fences, so the parser scans for the first balanced
// array instead of unmarshaling the whole reply.

package insights

import (
	"encoding/json"
	"errors"

	"github.com/emberlyhq/emberly-backend/internal/feedback"
)

var ErrNoSuggestions = errors.New("no parseable suggestions in reply")

// ParseSuggestions pulls the first JSON array out of the reply and
// validates each entry. Entries with empty text are dropped; unknown
// intensities are replaced with defaultIntensity; confidence is
// clamped to [0,1]. Returns ErrNoSuggestions when nothing valid
// survives.
func ParseSuggestions(reply, defaultIntensity string) ([]*Suggestion, error) {
	raw := extractJSONArray(reply)
	if raw == "" {
		return nil, ErrNoSuggestions
	}

	var entries []*Suggestion
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, ErrNoSuggestions
	}

	valid := make([]*Suggestion, 0, len(entries))
	for _, entry := range entries {
		if entry == nil || entry.Text == "" {
			continue
		}
		switch entry.Intensity {
		case feedback.IntensitySweet, feedback.IntensityFlirty, feedback.IntensitySpicy, feedback.IntensityWild:
		default:
			entry.Intensity = defaultIntensity
		}
		if entry.Confidence < 0 {
			entry.Confidence = 0
		}
		if entry.Confidence > 1 {
			entry.Confidence = 1
		}
		valid = append(valid, entry)
	}

	if len(valid) == 0 {
		return nil, ErrNoSuggestions
	}
	return valid, nil
}

// extractJSONArray returns the first balanced top-level JSON array in
// the text, or empty. Bracket characters inside JSON strings are
// skipped.
func extractJSONArray(text string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '[':
			if start < 0 {
				start = i
			}
			depth++
		case ']':
			if start >= 0 {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	return ""
}
