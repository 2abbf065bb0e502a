package journey

import (
	"context"
	"log"
	"time"

	"github.com/emberlyhq/emberly-backend/internal/feedback"
)

// Scheduler auto-detects milestones for recently active users so
// couples earn achievements without opening the journey screen.
type Scheduler struct {
	service     Service
	feedbackSvc feedback.Service
}

func NewScheduler(service Service, feedbackSvc feedback.Service) *Scheduler {
	return &Scheduler{service: service, feedbackSvc: feedbackSvc}
}

func (s *Scheduler) Start(ctx context.Context) {
	// Daily milestone sweep at 8 AM
	go s.runDaily(ctx, 8, 0, s.autoDetectMilestones)
}

// autoDetectMilestones runs the detector set for every user active in
// the last week and persists what clears the confidence floor. Per-user
// failures are logged and skipped so one bad row never stalls the
// sweep.
func (s *Scheduler) autoDetectMilestones(ctx context.Context) error {
	userIDs, err := s.feedbackSvc.ListActiveUserIDs(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		detections, err := s.service.DetectMilestones(ctx, userID)
		if err != nil {
			log.Printf("journey: milestone detection failed for user %d: %v", userID, err)
			continue
		}

		for _, detection := range detections {
			if _, err := s.service.CreateMilestone(ctx, userID, detection, nil); err != nil && err != ErrMilestoneExists {
				log.Printf("journey: milestone creation failed for user %d: %v", userID, err)
			}
		}
	}

	return nil
}

func (s *Scheduler) runDaily(ctx context.Context, hour, minute int, task func(context.Context) error) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}

		timer := time.NewTimer(next.Sub(now))

		select {
		case <-timer.C:
			if err := task(ctx); err != nil {
				log.Printf("Scheduled task failed: %v", err)
			}
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}
