package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"weddingrsvp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInvitationRepo is an in-memory InvitationRepository for tests.
type fakeInvitationRepo struct {
	byID      map[string]*domain.Invitation
	nextID    int
	err       error // if set, every method returns this error
	saveCalls int
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{byID: make(map[string]*domain.Invitation), nextID: 1}
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	if f.err != nil {
		return f.err
	}
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	f.nextID++
	f.byID[inv.ID] = inv
	return nil
}

func (f *fakeInvitationRepo) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	if f.err != nil {
		return nil, f.err
	}
	inv, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func (f *fakeInvitationRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Invitation, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, inv := range f.byID {
		if inv.TokenHash == tokenHash {
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) ListAll(ctx context.Context) ([]*domain.Invitation, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Invitation, 0, len(f.byID))
	for i := 1; i < f.nextID; i++ {
		if inv, ok := f.byID[fmt.Sprintf("inv-%d", i)]; ok {
			result = append(result, inv)
		}
	}
	return result, nil
}

func (f *fakeInvitationRepo) SaveResponse(ctx context.Context, inv *domain.Invitation, guests []*domain.Guest) error {
	if f.err != nil {
		return f.err
	}
	f.saveCalls++
	f.byID[inv.ID] = inv
	return nil
}

// fakeGuestRepo is an in-memory GuestRepository for tests.
type fakeGuestRepo struct {
	guests []*domain.Guest
	nextID int
	err    error
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{nextID: 1}
}

func (f *fakeGuestRepo) Create(ctx context.Context, g *domain.Guest) error {
	if f.err != nil {
		return f.err
	}
	g.ID = fmt.Sprintf("g-%d", f.nextID)
	f.nextID++
	f.guests = append(f.guests, g)
	return nil
}

func (f *fakeGuestRepo) ListByInvitationID(ctx context.Context, invitationID string) ([]*domain.Guest, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := []*domain.Guest{}
	for _, g := range f.guests {
		if g.InvitationID == invitationID {
			result = append(result, g)
		}
	}
	return result, nil
}

func (f *fakeGuestRepo) ListAll(ctx context.Context) ([]*domain.Guest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.guests, nil
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

// seedInvitation stores an invitation with guests and returns the raw token.
func seedInvitation(t *testing.T, invRepo *fakeInvitationRepo, guestRepo *fakeGuestRepo, typ domain.InvitationType, guestNames ...string) (string, *domain.Invitation) {
	t.Helper()
	token, err := GenerateToken()
	require.NoError(t, err)

	inv := &domain.Invitation{Name: "Famille Test", Type: typ, TokenHash: HashToken(token)}
	require.NoError(t, invRepo.Create(context.Background(), inv))
	for _, n := range guestNames {
		g := &domain.Guest{InvitationID: inv.ID, Name: n}
		require.NoError(t, guestRepo.Create(context.Background(), g))
	}
	return token, inv
}

func fullSubmission(guests []*domain.Guest) *domain.ResponseSubmission {
	sub := &domain.ResponseSubmission{
		Regime:             "végétarien",
		Allergy:            "arachides",
		Accommodation:      boolPtr(true),
		AccommodationCount: intPtr(2),
		Music:              "https://example.com/playlist",
	}
	for _, g := range guests {
		sub.Guests = append(sub.Guests, domain.GuestAnswers{
			GuestID:   g.ID,
			Mairie:    boolPtr(true),
			Cocktail:  boolPtr(true),
			Chateau:   boolPtr(false),
			Brunch:    true,
			AIConsent: boolPtr(true),
		})
	}
	return sub
}

func TestResolve(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	guestRepo := newFakeGuestRepo()
	token, inv := seedInvitation(t, invRepo, guestRepo, domain.TypeFull, "Alice", "Bob")
	svc := NewRSVPService(invRepo, guestRepo, nil, "")

	resolved, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, resolved.Invitation.ID)
	require.Len(t, resolved.Guests, 2)
	assert.Equal(t, "Alice", resolved.Guests[0].Name)
	assert.Equal(t, "Bob", resolved.Guests[1].Name)
}

func TestResolveTrimsToken(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	guestRepo := newFakeGuestRepo()
	token, _ := seedInvitation(t, invRepo, guestRepo, domain.TypeFull, "Alice")
	svc := NewRSVPService(invRepo, guestRepo, nil, "")

	_, err := svc.Resolve(context.Background(), "  "+token+"\n")
	assert.NoError(t, err)
}

func TestResolveUnknownToken(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	guestRepo := newFakeGuestRepo()
	seedInvitation(t, invRepo, guestRepo, domain.TypeFull, "Alice")
	svc := NewRSVPService(invRepo, guestRepo, nil, "")

	for _, token := range []string{"", "   ", "deadbeef"} {
		_, err := svc.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
}

func TestResolveRepositoryError(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	invRepo.err = errors.New("connection refused")
	svc := NewRSVPService(invRepo, newFakeGuestRepo(), nil, "")

	_, err := svc.Resolve(context.Background(), "sometoken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitRoundTrip(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	guestRepo := newFakeGuestRepo()
	token, _ := seedInvitation(t, invRepo, guestRepo, domain.TypeFull, "Alice", "Bob")
	svc := NewRSVPService(invRepo, guestRepo, nil, "")

	resolved, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, resolved.Invitation.Confirmed())

	_, err = svc.Submit(context.Background(), token, fullSubmission(resolved.Guests))
	require.NoError(t, err)
	assert.Equal(t, 1, invRepo.saveCalls)

	again, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, again.Invitation.Confirmed())
	assert.Equal(t, "végétarien", again.Invitation.Regime)
	assert.Equal(t, domain.AnswerYes, again.Invitation.Accommodation)
	require.NotNil(t, again.Invitation.AccommodationCount)
	assert.Equal(t, 2, *again.Invitation.AccommodationCount)
	for _, g := range again.Guests {
		assert.Equal(t, domain.AnswerYes, g.Mairie)
		assert.Equal(t, domain.AnswerNo, g.Chateau)
		assert.True(t, g.Brunch)
	}
}

func TestSubmitIncomplete(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	guestRepo := newFakeGuestRepo()
	token, _ := seedInvitation(t, invRepo, guestRepo, domain.TypeFull, "Alice")
	svc := NewRSVPService(invRepo, guestRepo, nil, "")

	resolved, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	sub := fullSubmission(resolved.Guests)
	sub.Guests[0].Chateau = nil

	_, err = svc.Submit(context.Background(), token, sub)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "Alice", verr.Fields[0].GuestName)
	assert.Equal(t, domain.FieldChateau, verr.Fields[0].Field)
	assert.Zero(t, invRepo.saveCalls)
}

func TestSubmitUnknownGuest(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	guestRepo := newFakeGuestRepo()
	token, _ := seedInvitation(t, invRepo, guestRepo, domain.TypeFull, "Alice")
	svc := NewRSVPService(invRepo, guestRepo, nil, "")

	resolved, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	sub := fullSubmission(resolved.Guests)
	sub.Guests[0].GuestID = "g-999"

	_, err = svc.Submit(context.Background(), token, sub)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmitClearsCountWhenAccommodationDeclined(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	guestRepo := newFakeGuestRepo()
	token, _ := seedInvitation(t, invRepo, guestRepo, domain.TypePartialChateau, "Alice")
	svc := NewRSVPService(invRepo, guestRepo, nil, "")

	resolved, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	sub := fullSubmission(resolved.Guests)
	sub.Accommodation = boolPtr(false)
	// stale count from the form must not survive a declined accommodation
	sub.AccommodationCount = intPtr(4)

	saved, err := svc.Submit(context.Background(), token, sub)
	require.NoError(t, err)
	assert.Equal(t, domain.AnswerNo, saved.Invitation.Accommodation)
	assert.Nil(t, saved.Invitation.AccommodationCount)
}

func TestSubmitResubmission(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	guestRepo := newFakeGuestRepo()
	token, _ := seedInvitation(t, invRepo, guestRepo, domain.TypePartialMairie, "Alice")
	svc := NewRSVPService(invRepo, guestRepo, nil, "")

	resolved, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)

	first := fullSubmission(resolved.Guests)
	first.Accommodation = boolPtr(false)
	first.AccommodationCount = nil
	_, err = svc.Submit(context.Background(), token, first)
	require.NoError(t, err)

	second := fullSubmission(resolved.Guests)
	second.Accommodation = boolPtr(false)
	second.AccommodationCount = nil
	second.Guests[0].Mairie = boolPtr(false)
	saved, err := svc.Submit(context.Background(), token, second)
	require.NoError(t, err)

	assert.Equal(t, 2, invRepo.saveCalls)
	assert.Equal(t, domain.AnswerNo, saved.Guests[0].Mairie)
	assert.True(t, saved.Invitation.Confirmed())
}

func TestSubmitNil(t *testing.T) {
	svc := NewRSVPService(newFakeInvitationRepo(), newFakeGuestRepo(), nil, "")
	_, err := svc.Submit(context.Background(), "sometoken", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// fakeEmailService records confirmation notifications.
type fakeEmailService struct {
	sentTo []string
	err    error
}

func (f *fakeEmailService) SendResponseConfirmed(ctx context.Context, to string, data *domain.ConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, to)
	return nil
}

func TestSubmitNotifies(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	guestRepo := newFakeGuestRepo()
	token, _ := seedInvitation(t, invRepo, guestRepo, domain.TypeFull, "Alice")
	email := &fakeEmailService{}
	svc := NewRSVPService(invRepo, guestRepo, email, "couple@example.com")

	resolved, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), token, fullSubmission(resolved.Guests))
	require.NoError(t, err)

	assert.Equal(t, []string{"couple@example.com"}, email.sentTo)
}

func TestSubmitNotificationFailureDoesNotFailSubmission(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	guestRepo := newFakeGuestRepo()
	token, _ := seedInvitation(t, invRepo, guestRepo, domain.TypeFull, "Alice")
	email := &fakeEmailService{err: errors.New("ses throttled")}
	svc := NewRSVPService(invRepo, guestRepo, email, "couple@example.com")

	resolved, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), token, fullSubmission(resolved.Guests))
	require.NoError(t, err)
	assert.Equal(t, 1, invRepo.saveCalls)
}
