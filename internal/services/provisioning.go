package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"weddingrsvp/internal/domain"
)

type provisioningService struct {
	invitationRepo domain.InvitationRepository
	guestRepo      domain.GuestRepository
	baseURL        string
}

// NewProvisioningService creates the admin-side invitation provisioning
// service. baseURL is used to build the shareable link.
func NewProvisioningService(invitationRepo domain.InvitationRepository, guestRepo domain.GuestRepository, baseURL string) domain.ProvisioningService {
	return &provisioningService{
		invitationRepo: invitationRepo,
		guestRepo:      guestRepo,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *provisioningService) CreateInvitation(ctx context.Context, name string, typ domain.InvitationType, guestNames []string) (*domain.ProvisionedInvitation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := domain.ParseInvitationType(string(typ)); err != nil {
		return nil, domain.ErrInvalidInput
	}
	var names []string
	for _, n := range guestNames {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, domain.ErrInvalidInput
	}

	token, err := GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	shareURL := fmt.Sprintf("%s/rsvp/%s", s.baseURL, token)

	now := time.Now()
	inv := domain.NewInvitation(name, typ, HashToken(token), shareURL, now)
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	guests := make([]*domain.Guest, 0, len(names))
	for _, n := range names {
		g := domain.NewGuest(inv.ID, n, now)
		if err := s.guestRepo.Create(ctx, g); err != nil {
			return nil, fmt.Errorf("create guest: %w", err)
		}
		guests = append(guests, g)
	}

	return &domain.ProvisionedInvitation{
		Invitation: &domain.InvitationWithGuests{Invitation: inv, Guests: guests},
		Token:      token,
		ShareURL:   shareURL,
	}, nil
}
