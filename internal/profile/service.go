// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/emberlyhq/emberly-backend/internal/archetype"
	"github.com/emberlyhq/emberly-backend/internal/feedback"
	"github.com/emberlyhq/emberly-backend/internal/journey"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	// ErrStorageUnavailable marks snapshot persistence failures as
	// retryable. BuildProfile still returns the freshly built profile
	// alongside it; the read path never depends on the write path.
	ErrStorageUnavailable = errors.New("profile storage unavailable")
)

// EngagementProvider supplies session-level usage statistics. They are
// an input to the builder, not something this module derives.
type EngagementProvider interface {
	Stats(ctx context.Context, userID int64) (*EngagementStats, error)
}

// StaticEngagementProvider returns the same neutral stats for every
// user. It stands in until the analytics pipeline ships per-user
// numbers.
type StaticEngagementProvider struct {
	Defaults EngagementStats
}

func (p *StaticEngagementProvider) Stats(ctx context.Context, userID int64) (*EngagementStats, error) {
	stats := p.Defaults
	return &stats, nil
}

type Service interface {
	BuildProfile(ctx context.Context, userID int64) (*ComprehensiveUserProfile, error)
	GetProfile(ctx context.Context, userID int64) (*ComprehensiveUserProfile, error)
}

type service struct {
	repo        Repository
	feedbackSvc feedback.Service
	archetypes  archetype.Repository
	journeyRepo journey.Repository
	engagement  EngagementProvider
}

func NewService(repo Repository, feedbackSvc feedback.Service, archetypes archetype.Repository, journeyRepo journey.Repository, engagement EngagementProvider) Service {
	return &service{
		repo:        repo,
		feedbackSvc: feedbackSvc,
		archetypes:  archetypes,
		journeyRepo: journeyRepo,
		engagement:  engagement,
	}
}

// BuildProfile recomputes and persists the snapshot. When only the
// snapshot write fails, the built profile is returned together with
// ErrStorageUnavailable so callers can still serve it.
func (s *service) BuildProfile(ctx context.Context, userID int64) (*ComprehensiveUserProfile, error) {
	analysis, err := s.feedbackSvc.Analyze(ctx, userID)
	if err != nil {
		return nil, err
	}

	assignment, err := s.archetypes.Get(ctx, userID)
	if err != nil && !errors.Is(err, archetype.ErrNotAssigned) {
		return nil, err
	}

	joined, err := s.journeyRepo.GetJoinDate(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.engagement.Stats(ctx, userID)
	if err != nil {
		log.Printf("profile: engagement stats unavailable for user %d: %v", userID, err)
		stats = nil
	}

	started := time.Now()
	built := Build(&BuildInput{
		Analysis:     analysis,
		Assignment:   assignment,
		Engagement:   stats,
		DaysTogether: int(time.Since(joined).Hours() / 24),
	})
	built.UserID = userID
	recordBuild(time.Since(started))

	if err := s.repo.Upsert(ctx, built); err != nil {
		log.Printf("profile: snapshot write failed for user %d: %v", userID, err)
		recordSnapshotFailure()
		return built, err
	}

	return built, nil
}

// GetProfile serves the stored snapshot, building one on first access.
func (s *service) GetProfile(ctx context.Context, userID int64) (*ComprehensiveUserProfile, error) {
	profile, err := s.repo.Get(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	return s.BuildProfile(ctx, userID)
}
