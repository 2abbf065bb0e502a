// internal/notify/service.go
// Celebration delivery for freshly earned milestones. Implements the
// journey.Notifier interface; delivery is best effort and per-channel
// failures never fail the milestone itself.

package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/emberlyhq/emberly-backend/internal/journey"
)

type Service struct {
	repo  Repository
	email EmailSender // nil disables the channel
	sms   SMSSender   // nil disables the channel
}

func NewService(repo Repository, email EmailSender, sms SMSSender) *Service {
	return &Service{repo: repo, email: email, sms: sms}
}

// NotifyMilestone sends the celebration message over every configured
// channel the user has an address for.
func (s *Service) NotifyMilestone(ctx context.Context, userID int64, milestone *journey.Milestone) error {
	contact, err := s.repo.GetContact(ctx, userID)
	if err != nil {
		return err
	}

	subject := "You've reached a milestone: " + milestone.Title
	body := milestoneBody(contact.DisplayName, milestone)

	sent := false
	if s.email != nil && contact.Email != nil && *contact.Email != "" {
		if err := s.email.SendEmail(ctx, *contact.Email, subject, body); err != nil {
			log.Printf("notify: celebration email failed for user %d: %v", userID, err)
		} else {
			sent = true
			recordDelivery("email")
		}
	}

	if s.sms != nil && contact.Phone != nil && *contact.Phone != "" {
		message := fmt.Sprintf("Emberly: %s! %s", milestone.Title, milestone.Description)
		if err := s.sms.SendSMS(ctx, *contact.Phone, message); err != nil {
			log.Printf("notify: celebration SMS failed for user %d: %v", userID, err)
		} else {
			sent = true
			recordDelivery("sms")
		}
	}

	if !sent {
		log.Printf("notify: no delivery channel available for user %d", userID)
	}

	return nil
}

func milestoneBody(name string, milestone *journey.Milestone) string {
	greeting := "Hi"
	if name != "" {
		greeting = "Hi " + name
	}

	body := fmt.Sprintf("%s,\n\nYou two just reached a new milestone: %s.\n\n%s\n",
		greeting, milestone.Title, milestone.Description)

	if suggestion := milestone.Context.CelebrationSuggestion; suggestion != "" {
		body += "\nAn idea to mark the moment: " + suggestion + "\n"
	}

	body += "\nKeep it going,\nThe Emberly team\n"
	return body
}
