package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"weddingrsvp/internal/domain"
)

type rsvpService struct {
	invitationRepo domain.InvitationRepository
	guestRepo      domain.GuestRepository
	emailService   domain.EmailService
	notifyAddress  string
}

// NewRSVPService creates the guest-facing service. emailService may be nil;
// notifyAddress is where submission notifications are sent when it is not.
func NewRSVPService(invitationRepo domain.InvitationRepository, guestRepo domain.GuestRepository, emailService domain.EmailService, notifyAddress string) domain.RSVPService {
	return &rsvpService{
		invitationRepo: invitationRepo,
		guestRepo:      guestRepo,
		emailService:   emailService,
		notifyAddress:  notifyAddress,
	}
}

func (s *rsvpService) Resolve(ctx context.Context, token string) (*domain.InvitationWithGuests, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrNotFound
	}

	inv, err := s.invitationRepo.GetByTokenHash(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// A wrong token and removed data must stay indistinguishable.
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation by token hash: %w", err)
	}

	guests, err := s.guestRepo.ListByInvitationID(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}

	return &domain.InvitationWithGuests{Invitation: inv, Guests: guests}, nil
}

func (s *rsvpService) Submit(ctx context.Context, token string, sub *domain.ResponseSubmission) (*domain.InvitationWithGuests, error) {
	if sub == nil {
		return nil, domain.ErrInvalidInput
	}

	resolved, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	inv, guests := resolved.Invitation, resolved.Guests

	if err := applySubmission(inv, guests, sub); err != nil {
		return nil, err
	}

	if fieldErrs := domain.ValidateResponse(inv, guests); len(fieldErrs) > 0 {
		return nil, &domain.ValidationError{Fields: fieldErrs}
	}

	now := time.Now()
	inv.ConfirmedAt = &now
	inv.UpdatedAt = now
	for _, g := range guests {
		g.UpdatedAt = now
	}

	if err := s.invitationRepo.SaveResponse(ctx, inv, guests); err != nil {
		return nil, fmt.Errorf("save response: %w", err)
	}

	s.notify(ctx, resolved)
	return resolved, nil
}

// applySubmission overwrites the answer fields with the submitted values.
// Guest IDs must belong to the resolved invitation.
func applySubmission(inv *domain.Invitation, guests []*domain.Guest, sub *domain.ResponseSubmission) error {
	byID := make(map[string]*domain.Guest, len(guests))
	for _, g := range guests {
		byID[g.ID] = g
	}

	for _, ga := range sub.Guests {
		g, ok := byID[ga.GuestID]
		if !ok {
			return domain.ErrInvalidInput
		}
		g.Mairie = domain.AnswerFromBoolPtr(ga.Mairie)
		g.Cocktail = domain.AnswerFromBoolPtr(ga.Cocktail)
		g.Chateau = domain.AnswerFromBoolPtr(ga.Chateau)
		g.Brunch = ga.Brunch
		g.AIConsent = domain.AnswerFromBoolPtr(ga.AIConsent)
	}

	inv.Regime = strings.TrimSpace(sub.Regime)
	inv.Allergy = strings.TrimSpace(sub.Allergy)
	inv.Music = strings.TrimSpace(sub.Music)
	inv.Accommodation = domain.AnswerFromBoolPtr(sub.Accommodation)
	inv.AccommodationCount = sub.AccommodationCount
	if inv.Accommodation != domain.AnswerYes {
		// Headcount only makes sense alongside an accepted accommodation.
		inv.AccommodationCount = nil
	}
	return nil
}

// notify emails the couple about the confirmed response. Best effort: the
// submission has already been persisted, so failures are only logged.
func (s *rsvpService) notify(ctx context.Context, resolved *domain.InvitationWithGuests) {
	if s.emailService == nil || s.notifyAddress == "" {
		return
	}
	inv := resolved.Invitation
	data := &domain.ConfirmationEmailData{
		InvitationName: inv.Name,
		GuestCount:     len(resolved.Guests),
		Accommodation:  inv.Accommodation,
		Regime:         inv.Regime,
		Allergy:        inv.Allergy,
		Music:          inv.Music,
	}
	if inv.AccommodationCount != nil {
		data.AccommodationCount = *inv.AccommodationCount
	}
	if err := s.emailService.SendResponseConfirmed(ctx, s.notifyAddress, data); err != nil {
		log.Printf("[RSVP] failed to send confirmation notification for %q: %v", inv.Name, err)
	}
}
