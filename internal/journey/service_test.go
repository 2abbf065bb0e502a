package journey

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/emberlyhq/emberly-backend/internal/archetype"
	"github.com/emberlyhq/emberly-backend/internal/feedback"
)

type stubRepository struct {
	milestones []*Milestone
	nextID     int64
	joinDate   time.Time
}

func (r *stubRepository) CreateMilestone(ctx context.Context, m *Milestone) error {
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	r.milestones = append(r.milestones, m)
	return nil
}

func (r *stubRepository) GetMilestone(ctx context.Context, id int64) (*Milestone, error) {
	for _, m := range r.milestones {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, ErrMilestoneNotFound
}

func (r *stubRepository) ListMilestones(ctx context.Context, userID int64) ([]*Milestone, error) {
	var out []*Milestone
	for _, m := range r.milestones {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubRepository) HasMilestoneType(ctx context.Context, userID int64, milestoneType string) (bool, error) {
	for _, m := range r.milestones {
		if m.UserID == userID && m.Type == milestoneType {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepository) CountMilestonesSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	count := 0
	for _, m := range r.milestones {
		if m.UserID == userID && !m.AchievedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *stubRepository) SetCelebrated(ctx context.Context, id int64, notes *string) error {
	for _, m := range r.milestones {
		if m.ID == id {
			m.Celebrated = true
			m.CelebrationNotes = notes
			return nil
		}
	}
	return ErrMilestoneNotFound
}

func (r *stubRepository) GetJoinDate(ctx context.Context, userID int64) (time.Time, error) {
	if r.joinDate.IsZero() {
		return time.Now(), nil
	}
	return r.joinDate, nil
}

type stubFeedbackService struct {
	analysis    *feedback.Analysis
	recentCount int
}

func (s *stubFeedbackService) SubmitFeedback(ctx context.Context, userID int64, dto *feedback.SubmitFeedbackDTO) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubFeedbackService) Analyze(ctx context.Context, userID int64) (*feedback.Analysis, error) {
	if s.analysis == nil {
		return feedback.BuildAnalysis(nil), nil
	}
	return s.analysis, nil
}

func (s *stubFeedbackService) Predict(ctx context.Context, userID int64, category, intensity string) (*feedback.Prediction, error) {
	return nil, errors.New("not implemented")
}

func (s *stubFeedbackService) CountEventsSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	return s.recentCount, nil
}

func (s *stubFeedbackService) ListActiveUserIDs(ctx context.Context, since time.Time) ([]int64, error) {
	return nil, nil
}

type stubArchetypeRepo struct {
	assignment *archetype.Assignment
}

func (r *stubArchetypeRepo) Get(ctx context.Context, userID int64) (*archetype.Assignment, error) {
	if r.assignment == nil {
		return nil, archetype.ErrNotAssigned
	}
	return r.assignment, nil
}

func (r *stubArchetypeRepo) Upsert(ctx context.Context, assignment *archetype.Assignment) error {
	r.assignment = assignment
	return nil
}

func newTestService(repo *stubRepository, fb *stubFeedbackService, arch *stubArchetypeRepo) Service {
	return NewService(repo, fb, arch, nil)
}

func TestCreateMilestoneDeduplicatesByType(t *testing.T) {
	svc := newTestService(&stubRepository{}, &stubFeedbackService{}, &stubArchetypeRepo{})

	detection := &Detection{
		Type:         TypeConsistencyStreak,
		Title:        "Showing Up For Each Other",
		Description:  "ten in a month",
		Confidence:   0.7,
		Significance: SignificanceMedium,
	}

	first, err := svc.CreateMilestone(context.Background(), 1, detection, nil)
	if err != nil {
		t.Fatalf("first creation failed: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected a persisted milestone ID")
	}

	if _, err := svc.CreateMilestone(context.Background(), 1, detection, nil); !errors.Is(err, ErrMilestoneExists) {
		t.Fatalf("expected ErrMilestoneExists, got %v", err)
	}

	// A different user can still earn the same type
	if _, err := svc.CreateMilestone(context.Background(), 2, detection, nil); err != nil {
		t.Fatalf("other user should not be blocked: %v", err)
	}
}

func TestCelebrateMilestoneOwnership(t *testing.T) {
	repo := &stubRepository{}
	svc := newTestService(repo, &stubFeedbackService{}, &stubArchetypeRepo{})

	milestone, err := svc.CreateMilestone(context.Background(), 1, &Detection{
		Type: TypeHeatSeeker, Title: "t", Description: "d", Significance: SignificanceMedium,
	}, nil)
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}

	if err := svc.CelebrateMilestone(context.Background(), 2, milestone.ID, nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for a foreign milestone, got %v", err)
	}

	notes := "dinner at home"
	if err := svc.CelebrateMilestone(context.Background(), 1, milestone.ID, &notes); err != nil {
		t.Fatalf("owner celebration failed: %v", err)
	}

	stored, _ := repo.GetMilestone(context.Background(), milestone.ID)
	if !stored.Celebrated || stored.CelebrationNotes == nil || *stored.CelebrationNotes != notes {
		t.Fatal("celebration state was not persisted")
	}

	if err := svc.CelebrateMilestone(context.Background(), 1, 999, nil); !errors.Is(err, ErrMilestoneNotFound) {
		t.Fatalf("expected ErrMilestoneNotFound, got %v", err)
	}
}

func TestDetectMilestonesFiltersEarnedTypes(t *testing.T) {
	repo := &stubRepository{}
	fb := &stubFeedbackService{
		analysis:    &feedback.Analysis{TotalEvents: 8, OverallSatisfaction: 0.9},
		recentCount: 12,
	}
	svc := newTestService(repo, fb, &stubArchetypeRepo{})

	detections, err := svc.DetectMilestones(context.Background(), 1)
	if err != nil {
		t.Fatalf("detection failed: %v", err)
	}
	byType := detectionTypes(detections)
	if _, ok := byType[TypeCommunicationBreakthrough]; !ok {
		t.Fatal("expected communication_breakthrough before it is earned")
	}

	if _, err := svc.CreateMilestone(context.Background(), 1, byType[TypeCommunicationBreakthrough], nil); err != nil {
		t.Fatalf("creation failed: %v", err)
	}

	detections, err = svc.DetectMilestones(context.Background(), 1)
	if err != nil {
		t.Fatalf("second detection failed: %v", err)
	}
	if _, ok := detectionTypes(detections)[TypeCommunicationBreakthrough]; ok {
		t.Fatal("earned milestone types should be filtered from detections")
	}
}

func TestAnalyzeJourney(t *testing.T) {
	repo := &stubRepository{joinDate: time.Now().AddDate(0, 0, -45)}
	fb := &stubFeedbackService{
		analysis: &feedback.Analysis{
			TotalEvents:         20,
			OverallSatisfaction: 0.8,
			CategoryPreferences: []*feedback.CategoryPreference{
				{Category: "touch"}, {Category: "words"}, {Category: "playful"},
			},
		},
	}
	svc := newTestService(repo, fb, &stubArchetypeRepo{})

	for i, milestoneType := range []string{TypeBlueprintCompletion, TypeConsistencyStreak} {
		repo.milestones = append(repo.milestones, &Milestone{
			ID: int64(i + 1), UserID: 1, Type: milestoneType, AchievedAt: time.Now().AddDate(0, 0, -10),
		})
	}

	analytics, err := svc.AnalyzeJourney(context.Background(), 1)
	if err != nil {
		t.Fatalf("AnalyzeJourney failed: %v", err)
	}

	if analytics.CurrentPhase != PhaseBuilding {
		t.Errorf("phase = %q, want building", analytics.CurrentPhase)
	}
	if analytics.DaysTogether < 44 || analytics.DaysTogether > 45 {
		t.Errorf("days together = %d, want ~45", analytics.DaysTogether)
	}
	if analytics.MilestoneCount != 2 {
		t.Errorf("milestone count = %d, want 2", analytics.MilestoneCount)
	}
	// min(2*10, 70) + building bonus 10
	if analytics.OverallProgress != 30 {
		t.Errorf("progress = %d, want 30", analytics.OverallProgress)
	}

	metrics := analytics.GrowthMetrics
	if math.Abs(metrics.CommunicationScore-0.72) > 1e-9 {
		t.Errorf("communication score = %v, want 0.72", metrics.CommunicationScore)
	}
	if metrics.IntimacyScore != 0.8 {
		t.Errorf("intimacy score = %v, want 0.8", metrics.IntimacyScore)
	}
	if math.Abs(metrics.EngagementScore-0.6) > 1e-9 {
		t.Errorf("engagement score = %v, want 0.6", metrics.EngagementScore)
	}
	if metrics.OverallTrend != "improving" {
		t.Errorf("trend = %q, want improving", metrics.OverallTrend)
	}
	if math.Abs(metrics.WeeklyChange-0.2) > 1e-9 {
		t.Errorf("weekly change = %v, want 0.2", metrics.WeeklyChange)
	}

	if len(analytics.UpcomingMilestones) == 0 {
		t.Fatal("expected upcoming milestone hints")
	}
	if analytics.UpcomingMilestones[0].Type != "phase_deepening" {
		t.Errorf("first hint = %q, want phase_deepening", analytics.UpcomingMilestones[0].Type)
	}
}
