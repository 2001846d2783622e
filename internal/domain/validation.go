package domain

import "fmt"

// Field names a single question on the response form.
type Field string

const (
	FieldMairie             Field = "mairie"
	FieldCocktail           Field = "cocktail"
	FieldChateau            Field = "chateau"
	FieldBrunch             Field = "brunch"
	FieldAIConsent          Field = "ai_consent"
	FieldAccommodation      Field = "accommodation"
	FieldAccommodationCount Field = "accommodation_count"
)

// RequiredSet describes which questions an invitation type must answer.
// Brunch is boolean-only and defaults to false, so it is shown when required
// but can never be missing.
type RequiredSet struct {
	Mairie    bool `json:"mairie"`
	Cocktail  bool `json:"cocktail"`
	Chateau   bool `json:"chateau"`
	Brunch    bool `json:"brunch"`
	AIConsent bool `json:"ai_consent"`
}

// RequiredFields maps an invitation type to its required-answer set.
// ok is false for an unknown type, in which case the set is empty.
func RequiredFields(t InvitationType) (RequiredSet, bool) {
	switch t {
	case TypeFull:
		return RequiredSet{Mairie: true, Cocktail: true, Chateau: true, Brunch: true, AIConsent: true}, true
	case TypePartialMairie:
		return RequiredSet{Mairie: true, Cocktail: true, AIConsent: true}, true
	case TypePartialChateau:
		return RequiredSet{Chateau: true, Brunch: true, AIConsent: true}, true
	}
	return RequiredSet{}, false
}

// FieldError names one missing answer on a response.
type FieldError struct {
	GuestID   string `json:"guest_id,omitempty"`
	GuestName string `json:"guest_name,omitempty"`
	Field     Field  `json:"field"`
}

func (e FieldError) String() string {
	if e.GuestName != "" {
		return fmt.Sprintf("%s: %s unanswered", e.GuestName, e.Field)
	}
	return fmt.Sprintf("%s unanswered", e.Field)
}

// ValidateResponse checks an in-memory invitation and its guests for
// completeness before submission. It is a pure predicate: it performs no I/O
// and keeps no state, so it can be re-run on every attempt. A nil result
// means the response is complete.
//
// Answers on sub-events the invitation's type does not cover are ignored
// entirely, whatever their value.
func ValidateResponse(inv *Invitation, guests []*Guest) []FieldError {
	var errs []FieldError

	required, ok := RequiredFields(inv.Type)
	if !ok {
		errs = append(errs, FieldError{Field: "type"})
		return errs
	}

	for _, g := range guests {
		if required.Mairie && !g.Mairie.Answered() {
			errs = append(errs, FieldError{GuestID: g.ID, GuestName: g.Name, Field: FieldMairie})
		}
		if required.Cocktail && !g.Cocktail.Answered() {
			errs = append(errs, FieldError{GuestID: g.ID, GuestName: g.Name, Field: FieldCocktail})
		}
		if required.Chateau && !g.Chateau.Answered() {
			errs = append(errs, FieldError{GuestID: g.ID, GuestName: g.Name, Field: FieldChateau})
		}
		if required.AIConsent && !g.AIConsent.Answered() {
			errs = append(errs, FieldError{GuestID: g.ID, GuestName: g.Name, Field: FieldAIConsent})
		}
	}

	if !inv.Accommodation.Answered() {
		errs = append(errs, FieldError{Field: FieldAccommodation})
	}
	if inv.Accommodation == AnswerYes {
		if inv.AccommodationCount == nil || *inv.AccommodationCount <= 0 {
			errs = append(errs, FieldError{Field: FieldAccommodationCount})
		}
	}

	return errs
}
