package domain

import "context"

// GuestAnswers carries one guest's submitted answers. Nil booleans mean the
// tri-state question was left unanswered.
type GuestAnswers struct {
	GuestID   string
	Mairie    *bool
	Cocktail  *bool
	Chateau   *bool
	Brunch    bool
	AIConsent *bool
}

// ResponseSubmission is a full overwrite of an invitation's answer fields,
// as supplied by the guest-facing form.
type ResponseSubmission struct {
	Regime             string
	Allergy            string
	Accommodation      *bool
	AccommodationCount *int
	Music              string
	Guests             []GuestAnswers
}

// ValidationError carries the missing-field reasons for a rejected submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "incomplete response"
	}
	return "incomplete response: " + e.Fields[0].String()
}

// RSVPService is the guest-facing surface: token resolution and submission.
type RSVPService interface {
	// Resolve maps a raw link token to its invitation and guests.
	// Returns ErrNotFound for any unknown token; callers must not be able to
	// distinguish a wrong token from removed data.
	Resolve(ctx context.Context, token string) (*InvitationWithGuests, error)
	// Submit validates the submission against the invitation type's required
	// set, persists it, and stamps the confirmation timestamp. Returns a
	// *ValidationError when required answers are missing.
	Submit(ctx context.Context, token string, sub *ResponseSubmission) (*InvitationWithGuests, error)
}

// ProvisionedInvitation is the result of creating an invitation: the raw
// share token is returned exactly once and never stored.
type ProvisionedInvitation struct {
	Invitation *InvitationWithGuests `json:"invitation"`
	Token      string                `json:"token"`
	ShareURL   string                `json:"share_url"`
}

// ProvisioningService creates invitations and their guests ahead of any
// guest-facing interaction.
type ProvisioningService interface {
	CreateInvitation(ctx context.Context, name string, typ InvitationType, guestNames []string) (*ProvisionedInvitation, error)
}
