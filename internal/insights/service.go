// internal/insights/service.go

package insights

import (
	"context"
	"log"
	"time"

	"github.com/emberlyhq/emberly-backend/internal/profile"
)

const (
	defaultCount = 3
	maxCount     = 10
)

type Service interface {
	GetPersonalizedSuggestions(ctx context.Context, userID int64, category string, count int) ([]*Suggestion, error)
}

type service struct {
	generator  TextGenerator
	profileSvc profile.Service
}

func NewService(generator TextGenerator, profileSvc profile.Service) Service {
	return &service{generator: generator, profileSvc: profileSvc}
}

// GetPersonalizedSuggestions asks the generative collaborator for
// qualitative suggestions built on the user's profile. Any failure on
// that path degrades to the static per-archetype table; this method
// never returns an empty result and never surfaces a generator error.
func (s *service) GetPersonalizedSuggestions(ctx context.Context, userID int64, category string, count int) ([]*Suggestion, error) {
	if count <= 0 {
		count = defaultCount
	}
	if count > maxCount {
		count = maxCount
	}

	userProfile, err := s.profileSvc.GetProfile(ctx, userID)
	if err != nil && userProfile == nil {
		return nil, err
	}

	pc := &PromptContext{
		PrimaryArchetype:  userProfile.PrimaryArchetype,
		TopCategories:     userProfile.TopCategories,
		OptimalIntensity:  userProfile.OptimalIntensity,
		AvoidancePatterns: userProfile.AvoidancePatterns,
		SuccessPatterns:   userProfile.SuccessPatterns,
		RelationshipPhase: userProfile.RelationshipPhase,
		CategoryFilter:    category,
		Count:             count,
	}
	if userProfile.SecondaryArchetype != nil {
		pc.SecondaryArchetype = *userProfile.SecondaryArchetype
	}

	started := time.Now()
	reply, err := s.generator.Complete(ctx, BuildPrompt(pc))
	recordGeneration(time.Since(started), err == nil)
	if err != nil {
		log.Printf("insights: generation failed for user %d: %v", userID, err)
		return s.fallback(userProfile.PrimaryArchetype, category, count), nil
	}

	suggestions, err := ParseSuggestions(reply, userProfile.OptimalIntensity)
	if err != nil {
		log.Printf("insights: unparseable reply for user %d: %v", userID, err)
		return s.fallback(userProfile.PrimaryArchetype, category, count), nil
	}

	if len(suggestions) > count {
		suggestions = suggestions[:count]
	}
	recordServed("generated")
	return suggestions, nil
}

func (s *service) fallback(primaryArchetype, category string, count int) []*Suggestion {
	recordServed("fallback")
	return FallbackSuggestions(primaryArchetype, category, count)
}
