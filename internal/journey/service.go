// internal/journey/service.go

package journey

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/emberlyhq/emberly-backend/internal/archetype"
	"github.com/emberlyhq/emberly-backend/internal/feedback"
)

var (
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrMilestoneExists   = errors.New("milestone type already achieved")
	ErrUnauthorized      = errors.New("milestone belongs to another user")
)

// Notifier delivers celebration messages for freshly earned
// milestones. The notify module provides the implementation; a nil
// notifier disables delivery.
type Notifier interface {
	NotifyMilestone(ctx context.Context, userID int64, milestone *Milestone) error
}

type Service interface {
	DetectMilestones(ctx context.Context, userID int64) ([]*Detection, error)
	CreateMilestone(ctx context.Context, userID int64, detection *Detection, notes *string) (*Milestone, error)
	CelebrateMilestone(ctx context.Context, userID, milestoneID int64, notes *string) error
	ListMilestones(ctx context.Context, userID int64) ([]*Milestone, error)
	AnalyzeJourney(ctx context.Context, userID int64) (*Analytics, error)
}

type service struct {
	repo        Repository
	feedbackSvc feedback.Service
	archetypes  archetype.Repository
	notifier    Notifier
}

func NewService(repo Repository, feedbackSvc feedback.Service, archetypes archetype.Repository, notifier Notifier) Service {
	return &service{
		repo:        repo,
		feedbackSvc: feedbackSvc,
		archetypes:  archetypes,
		notifier:    notifier,
	}
}

// DetectMilestones runs the detector set against the user's current
// state and filters out milestone types they have already earned, so
// callers only see genuinely new candidates.
func (s *service) DetectMilestones(ctx context.Context, userID int64) ([]*Detection, error) {
	input, err := s.buildDetectorInput(ctx, userID)
	if err != nil {
		return nil, err
	}

	detections := RunDetectors(input)

	fresh := make([]*Detection, 0, len(detections))
	for _, detection := range detections {
		exists, err := s.repo.HasMilestoneType(ctx, userID, detection.Type)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		recordDetection(detection.Type)
		fresh = append(fresh, detection)
	}

	return fresh, nil
}

// CreateMilestone persists a detection. Each milestone type is earned
// at most once per user.
func (s *service) CreateMilestone(ctx context.Context, userID int64, detection *Detection, notes *string) (*Milestone, error) {
	exists, err := s.repo.HasMilestoneType(ctx, userID, detection.Type)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMilestoneExists
	}

	milestone := &Milestone{
		UserID:           userID,
		Type:             detection.Type,
		Title:            detection.Title,
		Description:      detection.Description,
		Significance:     detection.Significance,
		Context:          detection.Context,
		CelebrationNotes: notes,
		AchievedAt:       time.Now(),
	}

	if err := s.repo.CreateMilestone(ctx, milestone); err != nil {
		return nil, err
	}

	recordMilestoneCreated(milestone.Type, milestone.Significance)

	if s.notifier != nil && milestone.Significance == SignificanceHigh {
		if err := s.notifier.NotifyMilestone(ctx, userID, milestone); err != nil {
			log.Printf("journey: milestone notification failed for user %d: %v", userID, err)
		}
	}

	return milestone, nil
}

// CelebrateMilestone marks a milestone celebrated. It never changes
// phase or progress retroactively.
func (s *service) CelebrateMilestone(ctx context.Context, userID, milestoneID int64, notes *string) error {
	milestone, err := s.repo.GetMilestone(ctx, milestoneID)
	if err != nil {
		return err
	}
	if milestone.UserID != userID {
		return ErrUnauthorized
	}

	if err := s.repo.SetCelebrated(ctx, milestoneID, notes); err != nil {
		return err
	}

	recordCelebration()
	return nil
}

func (s *service) ListMilestones(ctx context.Context, userID int64) ([]*Milestone, error) {
	return s.repo.ListMilestones(ctx, userID)
}

// AnalyzeJourney assembles the full journey report: phase, growth
// metrics, overall progress and upcoming-milestone hints.
func (s *service) AnalyzeJourney(ctx context.Context, userID int64) (*Analytics, error) {
	analysis, err := s.feedbackSvc.Analyze(ctx, userID)
	if err != nil {
		return nil, err
	}

	joined, err := s.repo.GetJoinDate(ctx, userID)
	if err != nil {
		return nil, err
	}
	daysTogether := int(time.Since(joined).Hours() / 24)

	milestones, err := s.repo.ListMilestones(ctx, userID)
	if err != nil {
		return nil, err
	}

	recentMilestones, err := s.repo.CountMilestonesSince(ctx, userID, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	phase := ClassifyPhase(daysTogether, analysis.OverallSatisfaction)
	recordPhase(phase)

	return &Analytics{
		CurrentPhase:       phase,
		DaysTogether:       daysTogether,
		MilestoneCount:     len(milestones),
		Milestones:         milestones,
		GrowthMetrics:      buildGrowthMetrics(analysis, recentMilestones),
		OverallProgress:    overallProgress(len(milestones), phase),
		UpcomingMilestones: s.upcomingMilestones(ctx, userID, phase, analysis),
	}, nil
}

func buildGrowthMetrics(analysis *feedback.Analysis, recentMilestones int) *GrowthMetrics {
	satisfaction := analysis.OverallSatisfaction

	trend := "stable"
	if satisfaction > 0.7 {
		trend = "improving"
	}

	return &GrowthMetrics{
		CommunicationScore: satisfaction * 0.9,
		IntimacyScore:      satisfaction,
		EngagementScore:    math.Min(float64(len(analysis.CategoryPreferences))/5, 1),
		OverallTrend:       trend,
		WeeklyChange:       float64(recentMilestones) * 0.1,
	}
}

func overallProgress(milestoneCount int, phase string) int {
	progress := milestoneCount * 10
	if progress > 70 {
		progress = 70
	}
	progress += phaseBonus(phase)
	if progress > 100 {
		progress = 100
	}
	return progress
}

// upcomingMilestones hints at the next phase plus unearned detector
// milestones. Lookup failures just shorten the hint list.
func (s *service) upcomingMilestones(ctx context.Context, userID int64, phase string, analysis *feedback.Analysis) []*UpcomingMilestone {
	upcoming := []*UpcomingMilestone{
		{
			Type:  "phase_" + nextPhase(phase),
			Title: "Next Chapter: " + nextPhase(phase),
			Hint:  "Keep logging shared moments and your journey will shift into its next phase.",
		},
	}

	hints := []struct {
		milestoneType string
		title         string
		hint          string
	}{
		{TypeAdventurousExplorer, "Adventurous Explorers", "Try a couple more categories you haven't explored yet."},
		{TypeConsistencyStreak, "Showing Up For Each Other", "Ten shared activities in a month earns this one."},
		{TypeHeatSeeker, "Turning Up the Heat", "Loved moments at spicy or wild intensity get you here."},
	}

	for _, candidate := range hints {
		if len(upcoming) == 3 {
			break
		}
		exists, err := s.repo.HasMilestoneType(ctx, userID, candidate.milestoneType)
		if err != nil || exists {
			continue
		}
		upcoming = append(upcoming, &UpcomingMilestone{
			Type:  candidate.milestoneType,
			Title: candidate.title,
			Hint:  candidate.hint,
		})
	}

	return upcoming
}

func (s *service) buildDetectorInput(ctx context.Context, userID int64) (*DetectorInput, error) {
	analysis, err := s.feedbackSvc.Analyze(ctx, userID)
	if err != nil {
		return nil, err
	}

	recentEvents, err := s.feedbackSvc.CountEventsSince(ctx, userID, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	// A missing archetype just means the quiz detector stays quiet.
	assignment, err := s.archetypes.Get(ctx, userID)
	if err != nil && !errors.Is(err, archetype.ErrNotAssigned) {
		return nil, err
	}

	return &DetectorInput{
		Analysis:         analysis,
		Assignment:       assignment,
		RecentEventCount: recentEvents,
	}, nil
}
