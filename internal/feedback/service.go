// internal/feedback/service.go

package feedback

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrStorageUnavailable marks persistence failures as retryable
	ErrStorageUnavailable = errors.New("feedback storage unavailable")
)

// Rebuilder accepts profile rebuild requests triggered by new events.
// The profile module provides the implementation; feedback only
// enqueues and never blocks on it.
type Rebuilder interface {
	Enqueue(userID int64) bool
}

type Service interface {
	SubmitFeedback(ctx context.Context, userID int64, dto *SubmitFeedbackDTO) (string, error)
	Analyze(ctx context.Context, userID int64) (*Analysis, error)
	Predict(ctx context.Context, userID int64, category, intensity string) (*Prediction, error)
	CountEventsSince(ctx context.Context, userID int64, since time.Time) (int, error)
	ListActiveUserIDs(ctx context.Context, since time.Time) ([]int64, error)
}

type service struct {
	repo       Repository
	cache      AnalysisCache
	rebuilder  Rebuilder
	windowSize int
}

func NewService(repo Repository, cache AnalysisCache, rebuilder Rebuilder, windowSize int) Service {
	if windowSize <= 0 {
		windowSize = 100
	}
	return &service{
		repo:       repo,
		cache:      cache,
		rebuilder:  rebuilder,
		windowSize: windowSize,
	}
}

// SubmitFeedback appends one immutable event. The event ID is minted
// here, so concurrent submissions for the same user never collide.
func (s *service) SubmitFeedback(ctx context.Context, userID int64, dto *SubmitFeedbackDTO) (string, error) {
	now := time.Now()

	event := &Event{
		ID:             uuid.NewString(),
		UserID:         userID,
		SuggestionID:   dto.SuggestionID,
		SuggestionType: dto.SuggestionType,
		Category:       dto.Category,
		Intensity:      dto.Intensity,
		Label:          dto.Label,
		TimeOfDay:      TimeOfDayBucket(now.Hour()),
		DayOfWeek:      int(now.Weekday()),
	}
	if dto.Outcome != "" {
		event.Outcome = &dto.Outcome
	}
	if dto.Notes != "" {
		event.Notes = &dto.Notes
	}
	if dto.PartnerNotes != "" {
		event.PartnerNotes = &dto.PartnerNotes
	}

	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return "", err
	}

	recordEvent(normalizeLabel(event.Label))
	s.cache.Invalidate(ctx, userID)

	// Profile rebuilds happen off the write path. A full queue drops
	// the request; the next submit or an explicit rebuild catches up.
	if s.rebuilder != nil && !s.rebuilder.Enqueue(userID) {
		log.Printf("feedback: rebuild queue full, skipping rebuild for user %d", userID)
	}

	return event.ID, nil
}

// Analyze recomputes the statistical summary from the most recent
// events. Identical event history yields an identical analysis, so a
// short-lived cache in front is safe.
func (s *service) Analyze(ctx context.Context, userID int64) (*Analysis, error) {
	if cached, ok := s.cache.Get(ctx, userID); ok {
		recordCacheLookup(true)
		return cached, nil
	}
	recordCacheLookup(false)

	events, err := s.repo.ListRecentEvents(ctx, userID, s.windowSize)
	if err != nil {
		return nil, err
	}

	// The store returns newest first; the aggregator wants oldest
	// first so tie-breaks follow first-seen order.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}

	started := time.Now()
	analysis := BuildAnalysis(events)
	recordAnalysis(time.Since(started), analysis.OverallSatisfaction)

	s.cache.Set(ctx, userID, analysis)

	return analysis, nil
}

func (s *service) Predict(ctx context.Context, userID int64, category, intensity string) (*Prediction, error) {
	analysis, err := s.Analyze(ctx, userID)
	if err != nil {
		return nil, err
	}

	prediction := Predict(analysis, category, intensity)
	recordPrediction(prediction.Label)

	return prediction, nil
}

func (s *service) CountEventsSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	return s.repo.CountEventsSince(ctx, userID, since)
}

func (s *service) ListActiveUserIDs(ctx context.Context, since time.Time) ([]int64, error) {
	return s.repo.ListActiveUserIDs(ctx, since)
}
