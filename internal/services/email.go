package services

import (
	"context"
	"fmt"
	"log"

	"weddingrsvp/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendResponseConfirmed sends the couple a notification using the
// "response_confirmed" template and the given data.
func (s *emailService) SendResponseConfirmed(ctx context.Context, to string, data *domain.ConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("response_confirmed", data)
	if err != nil {
		return fmt.Errorf("failed to render response_confirmed template: %w", err)
	}
	if err := s.mailer.Send(to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	log.Printf("[EMAIL] Response confirmation for %q sent to %s", data.InvitationName, to)
	return nil
}
