package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"weddingrsvp/internal/delivery/http/helpers"
	"weddingrsvp/internal/domain"
)

type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// ResolveResponse is the payload for GET /rsvp/{token}: the invitation, its
// guests in display order, and the question set the invitation type requires.
type ResolveResponse struct {
	Invitation *domain.Invitation `json:"invitation"`
	Guests     []*domain.Guest    `json:"guests"`
	Required   domain.RequiredSet `json:"required"`
}

// Resolve godoc
// @Summary Resolve an invitation link token
// @Description Maps a secret link token to its invitation and guests. The same generic not_found is returned for any unknown token.
// @Tags rsvp
// @Produce json
// @Param token path string true "Link token"
// @Success 200 {object} controllers.ResolveResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvp/{token} [get]
func (c *RSVPController) Resolve(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	resolved, err := c.Service.Resolve(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "resolve failed", "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong")
		return
	}

	required, _ := domain.RequiredFields(resolved.Invitation.Type)
	helpers.WriteJSONSuccess(w, http.StatusOK, ResolveResponse{
		Invitation: resolved.Invitation,
		Guests:     resolved.Guests,
		Required:   required,
	})
}

// GuestAnswersRequest carries one guest's answers in a submission. Nil
// booleans mean the question was left unanswered.
type GuestAnswersRequest struct {
	ID        string `json:"id"`
	Mairie    *bool  `json:"mairie"`
	Cocktail  *bool  `json:"cocktail"`
	Chateau   *bool  `json:"chateau"`
	Brunch    bool   `json:"brunch"`
	AIConsent *bool  `json:"ai_consent"`
}

// SubmitRequest is the request body for POST /rsvp/{token}. It is a full
// overwrite of the invitation's answer fields.
type SubmitRequest struct {
	Regime             string                `json:"regime"`
	Allergy            string                `json:"allergy"`
	Accommodation      *bool                 `json:"accommodation"`
	AccommodationCount *int                  `json:"accommodation_count"`
	Music              string                `json:"music"`
	Guests             []GuestAnswersRequest `json:"guests"`
}

// Validate implements helpers.Validator.
func (s SubmitRequest) Validate() []string {
	var errs []string
	for _, g := range s.Guests {
		if g.ID == "" {
			errs = append(errs, "guest id is required")
			break
		}
	}
	if s.AccommodationCount != nil && *s.AccommodationCount < 0 {
		errs = append(errs, "accommodation_count must be positive")
	}
	return errs
}

// Submit godoc
// @Summary Submit an invitation's response
// @Description Overwrites the invitation's answers, runs completeness validation against the invitation type's required set, and stamps the confirmation timestamp. Failure codes are opaque; store errors are never echoed.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param token path string true "Link token"
// @Param body body controllers.SubmitRequest true "Response"
// @Success 200 {object} controllers.ResolveResponse "Confirmed invitation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed, details list the missing fields"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvp/{token} [post]
func (c *RSVPController) Submit(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	var req SubmitRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	sub := &domain.ResponseSubmission{
		Regime:             req.Regime,
		Allergy:            req.Allergy,
		Accommodation:      req.Accommodation,
		AccommodationCount: req.AccommodationCount,
		Music:              req.Music,
	}
	for _, g := range req.Guests {
		sub.Guests = append(sub.Guests, domain.GuestAnswers{
			GuestID:   g.ID,
			Mairie:    g.Mairie,
			Cocktail:  g.Cocktail,
			Chateau:   g.Chateau,
			Brunch:    g.Brunch,
			AIConsent: g.AIConsent,
		})
	}

	resolved, err := c.Service.Submit(r.Context(), token, sub)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			helpers.WriteJSONErrorDetails(w, http.StatusUnprocessableEntity, helpers.ErrCodeValidationFailed, "some required answers are missing", verr.Fields)
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown guest in submission")
		default:
			c.Logger.ErrorContext(r.Context(), "submit failed", "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong")
		}
		return
	}

	required, _ := domain.RequiredFields(resolved.Invitation.Type)
	helpers.WriteJSONSuccess(w, http.StatusOK, ResolveResponse{
		Invitation: resolved.Invitation,
		Guests:     resolved.Guests,
		Required:   required,
	})
}
