package domain

import "context"

// Category selects which answer column a counter or detail listing reads.
type Category string

const (
	// CategoryFullChateau counts chateau answers for type=full invitations only
	// (the wedding-day headcount).
	CategoryFullChateau Category = "full-chateau"
	// CategoryMairie counts town-hall answers for full and partial-mairie invitations.
	CategoryMairie Category = "mairie"
	// CategoryChateau counts chateau answers for full and partial-chateau
	// invitations (the logistics headcount; a superset of full-chateau).
	CategoryChateau Category = "chateau"
)

// ParseCategory validates a category query parameter.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryFullChateau, CategoryMairie, CategoryChateau:
		return c, nil
	}
	return "", ErrInvalidInput
}

// Counter tallies one category. Unanswered guests count toward Total only.
type Counter struct {
	Accepted int `json:"accepted"`
	Refused  int `json:"refused"`
	Total    int `json:"total"`
}

// DietGroup is a set of invitations sharing the exact same dietary regime string.
type DietGroup struct {
	Regime      string   `json:"regime"`
	Count       int      `json:"count"`
	Invitations []string `json:"invitations"`
}

// EventStats is the aggregated dashboard snapshot, recomputed per view.
type EventStats struct {
	FullChateau        Counter     `json:"full_chateau"`
	Mairie             Counter     `json:"mairie"`
	Chateau            Counter     `json:"chateau"`
	AccommodationTotal int         `json:"accommodation_total"`
	DietGroups         []DietGroup `json:"diet_groups"`
}

// GuestAnswer is one row of a per-category detail listing.
type GuestAnswer struct {
	GuestID        string `json:"guest_id"`
	GuestName      string `json:"guest_name"`
	InvitationID   string `json:"invitation_id"`
	InvitationName string `json:"invitation_name"`
	Answer         Answer `json:"answer"`
}

// AccommodationEntry is one invitation with accommodation accepted.
type AccommodationEntry struct {
	InvitationID   string `json:"invitation_id"`
	InvitationName string `json:"invitation_name"`
	Count          int    `json:"count"`
}

// StatsService computes dashboard statistics from a full snapshot of the store.
type StatsService interface {
	Overview(ctx context.Context) (*EventStats, error)
	ListInvitations(ctx context.Context) ([]*InvitationWithGuests, error)
	// GuestsByAnswer lists guests whose answer for the category is exactly
	// accepted (true) or refused (false); pending guests never appear.
	GuestsByAnswer(ctx context.Context, category Category, accepted bool) ([]*GuestAnswer, error)
	ListAccommodations(ctx context.Context) ([]*AccommodationEntry, error)
}
