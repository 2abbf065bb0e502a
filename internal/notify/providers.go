// internal/notify/providers.go

package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// EmailSender sends one email
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender sends one SMS
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// SendGridEmailSender implements email delivery using SendGrid
type SendGridEmailSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewSendGridEmailSender creates a new SendGrid email sender
func NewSendGridEmailSender(apiKey, from string) (EmailSender, error) {
	if apiKey == "" || from == "" {
		return nil, fmt.Errorf("incomplete SendGrid configuration")
	}

	return &SendGridEmailSender{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: "Emberly",
	}, nil
}

// SendEmail sends a single email via SendGrid
func (s *SendGridEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail("", to),
		body,
		"",
	)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: status %d", to, resp.StatusCode)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	log.Printf("Successfully sent email to %s", to)
	return nil
}

// TwilioSMSSender implements SMS delivery using Twilio
type TwilioSMSSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSMSSender creates a new Twilio SMS sender
func NewTwilioSMSSender(accountSID, authToken, from string) (SMSSender, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("incomplete Twilio configuration")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSMSSender{
		client: client,
		from:   from,
	}, nil
}

// SendSMS sends a single SMS
func (s *TwilioSMSSender) SendSMS(ctx context.Context, to, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send SMS to %s: %v", to, err)
		return err
	}

	if resp.Sid != nil {
		log.Printf("Successfully sent SMS to %s with SID: %s", to, *resp.Sid)
	}

	return nil
}

// MockEmailSender is a mock implementation for testing
type MockEmailSender struct {
	SentEmails []MockEmail
}

type MockEmail struct {
	To      string
	Subject string
	Body    string
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{SentEmails: make([]MockEmail, 0)}
}

func (m *MockEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	m.SentEmails = append(m.SentEmails, MockEmail{To: to, Subject: subject, Body: body})
	log.Printf("Mock: Sending email to %s: %s", to, subject)
	return nil
}

// MockSMSSender is a mock implementation for testing
type MockSMSSender struct {
	SentMessages []MockSMS
}

type MockSMS struct {
	To      string
	Message string
}

func NewMockSMSSender() *MockSMSSender {
	return &MockSMSSender{SentMessages: make([]MockSMS, 0)}
}

func (m *MockSMSSender) SendSMS(ctx context.Context, to, message string) error {
	m.SentMessages = append(m.SentMessages, MockSMS{To: to, Message: message})
	log.Printf("Mock: Sending SMS to %s: %s", to, message)
	return nil
}
