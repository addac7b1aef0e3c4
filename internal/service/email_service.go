package service

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// EmailService отправляет транзакционные письма
type EmailService interface {
	SendWelcome(ctx context.Context, toEmail, username string) error
}

// NoopEmailService используется, когда отправка почты выключена
type NoopEmailService struct{}

func (s *NoopEmailService) SendWelcome(ctx context.Context, toEmail, username string) error {
	log.Printf("[EmailService] noop send welcome to=%s", toEmail)
	return nil
}

// ResendEmailService отправляет письма через Resend REST API
type ResendEmailService struct {
	from   string
	client *resend.Client
}

// NewResendEmailService создает отправителя на основе Resend
func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

// SendWelcome отправляет приветственное письмо новому игроку
func (s *ResendEmailService) SendWelcome(ctx context.Context, toEmail, username string) error {
	if toEmail == "" {
		return fmt.Errorf("toEmail is required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Welcome to RetroScore",
		Text: fmt.Sprintf("Hi %s, welcome to RetroScore! Guess the score of classic matches and climb the leaderboard.",
			username),
		Html: fmt.Sprintf("<p>Hi <strong>%s</strong>, welcome to RetroScore!</p><p>Guess the score of classic matches and climb the leaderboard.</p>",
			username),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}
