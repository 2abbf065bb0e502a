// internal/insights/fallback.go
// Static per-archetype suggestion table. This is the hard floor under
// the generative collaborator: whatever happens upstream, callers get
// at least these.

package insights

import "github.com/emberlyhq/emberly-backend/internal/archetype"

var fallbackTable = map[string][]*Suggestion{
	archetype.Energetic: {
		{
			Text:       "Turn a chore into a race: loser plans the next date night.",
			Category:   "playful",
			Intensity:  "flirty",
			Confidence: 0.6,
			Reasoning:  "Energetic couples connect through shared motion and friendly competition.",
		},
		{
			Text:       "Take a sunset walk somewhere neither of you has been, phones in pockets.",
			Category:   "adventure",
			Intensity:  "sweet",
			Confidence: 0.6,
			Reasoning:  "Novel movement together is the energetic style's shortcut to closeness.",
		},
	},
	archetype.Sensual: {
		{
			Text:       "Cook dinner together with one rule: narrate what you love about each ingredient.",
			Category:   "romance",
			Intensity:  "sweet",
			Confidence: 0.6,
			Reasoning:  "Sensual connection builds through slow, shared sensory experiences.",
		},
		{
			Text:       "Trade five-minute shoulder massages with music you both chose.",
			Category:   "touch",
			Intensity:  "flirty",
			Confidence: 0.6,
			Reasoning:  "Unhurried touch is the sensual style's native language.",
		},
	},
	archetype.Sexual: {
		{
			Text:       "Send each other one message today describing a favorite shared memory in detail.",
			Category:   "words",
			Intensity:  "spicy",
			Confidence: 0.6,
			Reasoning:  "Anticipation built through the day deepens physical connection later.",
		},
		{
			Text:       "Plan an early night together and agree the evening has no schedule.",
			Category:   "touch",
			Intensity:  "spicy",
			Confidence: 0.6,
			Reasoning:  "Unstructured time together keeps the sexual style's spark central.",
		},
	},
	archetype.Kinky: {
		{
			Text:       "Each write down one curiosity you've never voiced, then trade notes.",
			Category:   "words",
			Intensity:  "spicy",
			Confidence: 0.6,
			Reasoning:  "Structured disclosure builds the trust the kinky style runs on.",
		},
		{
			Text:       "Pick a scenario together and agree on a signal word before you start.",
			Category:   "adventure",
			Intensity:  "wild",
			Confidence: 0.6,
			Reasoning:  "Clear agreements turn novelty into safety for exploratory couples.",
		},
	},
	archetype.Shapeshifter: {
		{
			Text:       "Roll a die: odd means a quiet night in, even means you both dress up and go out.",
			Category:   "playful",
			Intensity:  "flirty",
			Confidence: 0.6,
			Reasoning:  "Shapeshifters thrive when the mood is allowed to pick the plan.",
		},
		{
			Text:       "Swap roles for an evening: whoever usually plans follows, and vice versa.",
			Category:   "romance",
			Intensity:  "flirty",
			Confidence: 0.6,
			Reasoning:  "Role variety keeps the shapeshifter style engaged.",
		},
	},
}

var defaultFallback = []*Suggestion{
	{
		Text:       "Share one thing your partner did this week that you appreciated, over a meal you made together.",
		Category:   "words",
		Intensity:  "sweet",
		Confidence: 0.5,
		Reasoning:  "Expressed appreciation reliably lifts connection for any couple.",
	},
	{
		Text:       "Plan a first-date re-run: same kind of place, same questions, current answers.",
		Category:   "romance",
		Intensity:  "flirty",
		Confidence: 0.5,
		Reasoning:  "Revisiting your origin story reminds you both why you started.",
	},
}

// FallbackSuggestions returns canned entries for the archetype,
// preferring the category filter when any entry matches it. Never
// returns an empty slice.
func FallbackSuggestions(primaryArchetype, category string, count int) []*Suggestion {
	entries, ok := fallbackTable[primaryArchetype]
	if !ok {
		entries = defaultFallback
	}

	if category != "" {
		filtered := make([]*Suggestion, 0, len(entries))
		for _, entry := range entries {
			if entry.Category == category {
				filtered = append(filtered, entry)
			}
		}
		if len(filtered) > 0 {
			entries = filtered
		}
	}

	if count > 0 && len(entries) > count {
		entries = entries[:count]
	}

	out := make([]*Suggestion, len(entries))
	for i, entry := range entries {
		copied := *entry
		out[i] = &copied
	}
	return out
}
