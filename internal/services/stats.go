package services

import (
	"context"
	"fmt"
	"sort"

	"weddingrsvp/internal/domain"
)

type statsService struct {
	invitationRepo domain.InvitationRepository
	guestRepo      domain.GuestRepository
}

// NewStatsService creates the dashboard statistics service. Every call
// recomputes from a full snapshot of the store; at wedding-guest scale this
// is simpler than maintaining incremental counters and fast enough.
func NewStatsService(invitationRepo domain.InvitationRepository, guestRepo domain.GuestRepository) domain.StatsService {
	return &statsService{invitationRepo: invitationRepo, guestRepo: guestRepo}
}

func (s *statsService) snapshot(ctx context.Context) ([]*domain.InvitationWithGuests, error) {
	invs, err := s.invitationRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	guests, err := s.guestRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}

	byInvitation := make(map[string][]*domain.Guest)
	for _, g := range guests {
		byInvitation[g.InvitationID] = append(byInvitation[g.InvitationID], g)
	}

	result := make([]*domain.InvitationWithGuests, 0, len(invs))
	for _, inv := range invs {
		gs := byInvitation[inv.ID]
		if gs == nil {
			gs = []*domain.Guest{}
		}
		result = append(result, &domain.InvitationWithGuests{Invitation: inv, Guests: gs})
	}
	return result, nil
}

func (s *statsService) Overview(ctx context.Context) (*domain.EventStats, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(snap), nil
}

func (s *statsService) ListInvitations(ctx context.Context) ([]*domain.InvitationWithGuests, error) {
	return s.snapshot(ctx)
}

func (s *statsService) GuestsByAnswer(ctx context.Context, category domain.Category, accepted bool) ([]*domain.GuestAnswer, error) {
	if _, err := domain.ParseCategory(string(category)); err != nil {
		return nil, domain.ErrInvalidInput
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return CollectGuestAnswers(snap, category, accepted), nil
}

func (s *statsService) ListAccommodations(ctx context.Context) ([]*domain.AccommodationEntry, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return CollectAccommodations(snap), nil
}

// categoryAnswer returns the guest answer the category reads, and whether the
// invitation type participates in the category at all.
func categoryAnswer(category domain.Category, inv *domain.Invitation, g *domain.Guest) (domain.Answer, bool) {
	switch category {
	case domain.CategoryFullChateau:
		if inv.Type != domain.TypeFull {
			return domain.AnswerPending, false
		}
		return g.Chateau, true
	case domain.CategoryMairie:
		if inv.Type != domain.TypeFull && inv.Type != domain.TypePartialMairie {
			return domain.AnswerPending, false
		}
		return g.Mairie, true
	case domain.CategoryChateau:
		if inv.Type != domain.TypeFull && inv.Type != domain.TypePartialChateau {
			return domain.AnswerPending, false
		}
		return g.Chateau, true
	}
	return domain.AnswerPending, false
}

func tally(c *domain.Counter, a domain.Answer) {
	c.Total++
	switch a {
	case domain.AnswerYes:
		c.Accepted++
	case domain.AnswerNo:
		c.Refused++
	}
}

// Aggregate folds a full snapshot into event-wide statistics in one pass.
// It is a pure function: the result depends only on the snapshot contents,
// not on invitation order.
func Aggregate(snap []*domain.InvitationWithGuests) *domain.EventStats {
	stats := &domain.EventStats{}
	groups := make(map[string]*domain.DietGroup)

	for _, iwg := range snap {
		inv := iwg.Invitation
		for _, g := range iwg.Guests {
			if a, ok := categoryAnswer(domain.CategoryFullChateau, inv, g); ok {
				tally(&stats.FullChateau, a)
			}
			if a, ok := categoryAnswer(domain.CategoryMairie, inv, g); ok {
				tally(&stats.Mairie, a)
			}
			if a, ok := categoryAnswer(domain.CategoryChateau, inv, g); ok {
				tally(&stats.Chateau, a)
			}
		}

		if inv.Accommodation == domain.AnswerYes && inv.AccommodationCount != nil {
			stats.AccommodationTotal += *inv.AccommodationCount
		}

		if inv.Regime != "" {
			grp, ok := groups[inv.Regime]
			if !ok {
				grp = &domain.DietGroup{Regime: inv.Regime}
				groups[inv.Regime] = grp
			}
			grp.Count++
			grp.Invitations = append(grp.Invitations, inv.Name)
		}
	}

	stats.DietGroups = make([]domain.DietGroup, 0, len(groups))
	for _, grp := range groups {
		sort.Strings(grp.Invitations)
		stats.DietGroups = append(stats.DietGroups, *grp)
	}
	sort.Slice(stats.DietGroups, func(i, j int) bool {
		return stats.DietGroups[i].Regime < stats.DietGroups[j].Regime
	})

	return stats
}

// CollectGuestAnswers filters the snapshot down to guests whose answer for
// the category is exactly accepted or refused. Pending guests never appear.
func CollectGuestAnswers(snap []*domain.InvitationWithGuests, category domain.Category, accepted bool) []*domain.GuestAnswer {
	want := domain.AnswerNo
	if accepted {
		want = domain.AnswerYes
	}

	result := []*domain.GuestAnswer{}
	for _, iwg := range snap {
		for _, g := range iwg.Guests {
			a, ok := categoryAnswer(category, iwg.Invitation, g)
			if !ok || a != want {
				continue
			}
			result = append(result, &domain.GuestAnswer{
				GuestID:        g.ID,
				GuestName:      g.Name,
				InvitationID:   iwg.Invitation.ID,
				InvitationName: iwg.Invitation.Name,
				Answer:         a,
			})
		}
	}
	return result
}

// CollectAccommodations lists invitations with accommodation accepted.
// A missing headcount is reported as zero, not an error.
func CollectAccommodations(snap []*domain.InvitationWithGuests) []*domain.AccommodationEntry {
	result := []*domain.AccommodationEntry{}
	for _, iwg := range snap {
		inv := iwg.Invitation
		if inv.Accommodation != domain.AnswerYes {
			continue
		}
		entry := &domain.AccommodationEntry{
			InvitationID:   inv.ID,
			InvitationName: inv.Name,
		}
		if inv.AccommodationCount != nil {
			entry.Count = *inv.AccommodationCount
		}
		result = append(result, entry)
	}
	return result
}
