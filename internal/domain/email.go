package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ConfirmationEmailData holds data for the notification sent to the couple
// when an invitation submits its response.
type ConfirmationEmailData struct {
	InvitationName     string
	GuestCount         int
	Accommodation      Answer
	AccommodationCount int
	Regime             string
	Allergy            string
	Music              string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendResponseConfirmed(ctx context.Context, to string, data *ConfirmationEmailData) error
}
