package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Upsert(ctx context.Context, profile *ComprehensiveUserProfile) error
	Get(ctx context.Context, userID int64) (*ComprehensiveUserProfile, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// Upsert overwrites the user's snapshot in a single statement, so
// concurrent rebuilds resolve last-writer-wins without locking.
func (r *postgresRepository) Upsert(ctx context.Context, profile *ComprehensiveUserProfile) error {
	encoded, err := encodeProfile(profile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	query := `
        INSERT INTO user_preference_profiles (
            user_id, primary_archetype, secondary_archetype, archetype_confidence,
            overall_satisfaction, optimal_intensity, total_events, relationship_phase,
            top_categories, avoidance_patterns, success_patterns,
            personality_traits, adaptation_signals, future_recommendations, engagement,
            updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            primary_archetype = EXCLUDED.primary_archetype,
            secondary_archetype = EXCLUDED.secondary_archetype,
            archetype_confidence = EXCLUDED.archetype_confidence,
            overall_satisfaction = EXCLUDED.overall_satisfaction,
            optimal_intensity = EXCLUDED.optimal_intensity,
            total_events = EXCLUDED.total_events,
            relationship_phase = EXCLUDED.relationship_phase,
            top_categories = EXCLUDED.top_categories,
            avoidance_patterns = EXCLUDED.avoidance_patterns,
            success_patterns = EXCLUDED.success_patterns,
            personality_traits = EXCLUDED.personality_traits,
            adaptation_signals = EXCLUDED.adaptation_signals,
            future_recommendations = EXCLUDED.future_recommendations,
            engagement = EXCLUDED.engagement,
            updated_at = NOW()
        RETURNING created_at, updated_at
    `

	err = r.db.QueryRowxContext(
		ctx, query,
		profile.UserID, profile.PrimaryArchetype, profile.SecondaryArchetype, profile.ArchetypeConfidence,
		profile.OverallSatisfaction, profile.OptimalIntensity, profile.TotalEvents, profile.RelationshipPhase,
		encoded.topCategories, encoded.avoidancePatterns, encoded.successPatterns,
		encoded.personalityTraits, encoded.adaptationSignals, encoded.futureRecommendations, encoded.engagement,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return nil
}

func (r *postgresRepository) Get(ctx context.Context, userID int64) (*ComprehensiveUserProfile, error) {
	var profile ComprehensiveUserProfile
	query := `
        SELECT user_id, primary_archetype, secondary_archetype, archetype_confidence,
               overall_satisfaction, optimal_intensity, total_events, relationship_phase,
               top_categories, avoidance_patterns, success_patterns,
               personality_traits, adaptation_signals, future_recommendations, engagement,
               created_at, updated_at
        FROM user_preference_profiles
        WHERE user_id = $1
    `

	err := r.db.QueryRowxContext(ctx, query, userID).StructScan(&profile)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	decodeProfile(&profile)
	return &profile, nil
}

type encodedProfile struct {
	topCategories         []byte
	avoidancePatterns     []byte
	successPatterns       []byte
	personalityTraits     []byte
	adaptationSignals     []byte
	futureRecommendations []byte
	engagement            []byte
}

func encodeProfile(profile *ComprehensiveUserProfile) (*encodedProfile, error) {
	var encoded encodedProfile
	var err error

	fields := []struct {
		dst *[]byte
		src interface{}
	}{
		{&encoded.topCategories, profile.TopCategories},
		{&encoded.avoidancePatterns, profile.AvoidancePatterns},
		{&encoded.successPatterns, profile.SuccessPatterns},
		{&encoded.personalityTraits, profile.PersonalityTraits},
		{&encoded.adaptationSignals, profile.AdaptationSignals},
		{&encoded.futureRecommendations, profile.FutureRecommendations},
		{&encoded.engagement, profile.Engagement},
	}
	for _, field := range fields {
		if *field.dst, err = json.Marshal(field.src); err != nil {
			return nil, err
		}
	}

	return &encoded, nil
}

// decodeProfile hydrates the slice/struct fields from their JSONB
// columns. Malformed stored JSON leaves the field at its zero value.
func decodeProfile(profile *ComprehensiveUserProfile) {
	_ = json.Unmarshal(profile.RawTopCategories, &profile.TopCategories)
	_ = json.Unmarshal(profile.RawAvoidancePatterns, &profile.AvoidancePatterns)
	_ = json.Unmarshal(profile.RawSuccessPatterns, &profile.SuccessPatterns)
	_ = json.Unmarshal(profile.RawPersonalityTraits, &profile.PersonalityTraits)
	_ = json.Unmarshal(profile.RawAdaptationSignals, &profile.AdaptationSignals)
	_ = json.Unmarshal(profile.RawFutureRecommendations, &profile.FutureRecommendations)
	_ = json.Unmarshal(profile.RawEngagement, &profile.Engagement)
}
