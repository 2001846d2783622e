package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared across repositories and services.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InvitationType controls which sub-events an invitation's guests are asked about.
type InvitationType string

const (
	// TypeFull covers the whole program: town hall, cocktail, chateau day, brunch.
	TypeFull InvitationType = "full"
	// TypePartialMairie covers the town hall ceremony and cocktail only.
	TypePartialMairie InvitationType = "partial-mairie"
	// TypePartialChateau covers the chateau day and brunch only.
	TypePartialChateau InvitationType = "partial-chateau"
)

// ParseInvitationType validates a stored or submitted type string.
func ParseInvitationType(s string) (InvitationType, error) {
	switch t := InvitationType(s); t {
	case TypeFull, TypePartialMairie, TypePartialChateau:
		return t, nil
	}
	return "", ErrInvalidInput
}

// Invitation is one invited household or party. It is identified externally
// by a secret link token of which only the SHA-256 digest is stored.
type Invitation struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Type               InvitationType `json:"type"`
	TokenHash          string         `json:"-"`
	Regime             string         `json:"regime"`
	Allergy            string         `json:"allergy"`
	Accommodation      Answer         `json:"accommodation"`
	AccommodationCount *int           `json:"accommodation_count"`
	Music              string         `json:"music"`
	URL                string         `json:"url"`
	ConfirmedAt        *time.Time     `json:"confirmed_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// Confirmed reports whether the invitation has been submitted at least once.
func (i *Invitation) Confirmed() bool {
	return i.ConfirmedAt != nil
}

// NewInvitation returns a new Invitation. ID is set by the repository on create.
func NewInvitation(name string, typ InvitationType, tokenHash, url string, createdAt time.Time) *Invitation {
	return &Invitation{
		Name:      name,
		Type:      typ,
		TokenHash: tokenHash,
		URL:       url,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// InvitationWithGuests bundles an invitation with its guests in insertion order.
type InvitationWithGuests struct {
	Invitation *Invitation `json:"invitation"`
	Guests     []*Guest    `json:"guests"`
}

// InvitationRepository defines storage operations for invitations.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id string) (*Invitation, error)
	// GetByTokenHash returns ErrNotFound when no invitation matches the digest.
	GetByTokenHash(ctx context.Context, tokenHash string) (*Invitation, error)
	ListAll(ctx context.Context) ([]*Invitation, error)
	// SaveResponse overwrites the invitation's answer fields and all guest
	// answers in a single transaction, stamping confirmed_at.
	SaveResponse(ctx context.Context, inv *Invitation, guests []*Guest) error
}
