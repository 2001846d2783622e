package domain

import (
	"context"
	"time"
)

// Guest is an individual covered by an invitation, with independent
// per-sub-event answers. The invitation owns its guests for lifecycle
// purposes; InvitationID is a non-owning back-reference.
type Guest struct {
	ID           string    `json:"id"`
	InvitationID string    `json:"invitation_id"`
	Name         string    `json:"name"`
	Mairie       Answer    `json:"mairie"`
	Cocktail     Answer    `json:"cocktail"`
	Chateau      Answer    `json:"chateau"`
	Brunch       bool      `json:"brunch"`
	AIConsent    Answer    `json:"ai_consent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewGuest returns a new Guest with all answers pending. ID is set by the
// repository on create.
func NewGuest(invitationID, name string, createdAt time.Time) *Guest {
	return &Guest{
		InvitationID: invitationID,
		Name:         name,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// GuestRepository defines storage operations for guests.
type GuestRepository interface {
	Create(ctx context.Context, g *Guest) error
	// ListByInvitationID returns the invitation's guests in insertion order.
	ListByInvitationID(ctx context.Context, invitationID string) ([]*Guest, error)
	ListAll(ctx context.Context) ([]*Guest, error)
}
