package controllers

import (
	"encoding/csv"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"weddingrsvp/internal/delivery/http/helpers"
	"weddingrsvp/internal/domain"
)

type AdminController struct {
	Logger       *slog.Logger
	Auth         domain.AuthService
	Stats        domain.StatsService
	Provisioning domain.ProvisioningService
}

func NewAdminController(logger *slog.Logger, auth domain.AuthService, stats domain.StatsService, provisioning domain.ProvisioningService) *AdminController {
	return &AdminController{
		Logger:       logger,
		Auth:         auth,
		Stats:        stats,
		Provisioning: provisioning,
	}
}

// LoginRequest is the request body for POST /admin/login
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Validate implements helpers.Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Login) == "" {
		errs = append(errs, "login is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for POST /admin/login
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// Login godoc
// @Summary Log in to the dashboard
// @Description Checks login and password against the stored salted hash and returns an expiring session token.
// @Tags admin
// @Accept json
// @Produce json
// @Param body body controllers.LoginRequest true "Credentials"
// @Success 200 {object} helpers.APIResponse "data contains the token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/login [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	token, err := c.Auth.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		c.Logger.ErrorContext(r.Context(), "login failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer"})
}

// Overview godoc
// @Summary Aggregated response statistics
// @Description Recomputes category counters, the accommodation total, and dietary groups from a full snapshot.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the stats"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/overview [get]
func (c *AdminController) Overview(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Stats.Overview(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "overview failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// ListInvitations godoc
// @Summary List all invitations with their guests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/invitations [get]
func (c *AdminController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	invs, err := c.Stats.ListInvitations(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "list invitations failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invs)
}

// CreateInvitationRequest is the request body for POST /admin/invitations.
type CreateInvitationRequest struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Guests []string `json:"guests"`
}

// Validate implements helpers.Validator.
func (c CreateInvitationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if _, err := domain.ParseInvitationType(strings.TrimSpace(c.Type)); err != nil {
		errs = append(errs, `type must be "full", "partial-mairie", or "partial-chateau"`)
	}
	hasGuest := false
	for _, g := range c.Guests {
		if strings.TrimSpace(g) != "" {
			hasGuest = true
			break
		}
	}
	if !hasGuest {
		errs = append(errs, "at least one guest name is required")
	}
	return errs
}

// CreateInvitation godoc
// @Summary Provision a new invitation
// @Description Creates an invitation with its guests and a fresh share token. The raw token and share URL are returned exactly once; only the token's digest is stored.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateInvitationRequest true "Invitation"
// @Success 201 {object} helpers.APIResponse "data contains the invitation, token, and share URL"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/invitations [post]
func (c *AdminController) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	var req CreateInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	created, err := c.Provisioning.CreateInvitation(r.Context(), req.Name, domain.InvitationType(strings.TrimSpace(req.Type)), req.Guests)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid invitation")
			return
		}
		c.Logger.ErrorContext(r.Context(), "create invitation failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// GuestsByAnswer godoc
// @Summary List guests by category answer
// @Description Lists guests whose answer for the category is exactly accepted or refused. Pending guests never appear.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param category query string true "full-chateau, mairie, or chateau"
// @Param answer query string true "accepted or refused"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/guests [get]
func (c *AdminController) GuestsByAnswer(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid category")
		return
	}
	var accepted bool
	switch r.URL.Query().Get("answer") {
	case "accepted":
		accepted = true
	case "refused":
		accepted = false
	default:
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, `answer must be "accepted" or "refused"`)
		return
	}

	guests, err := c.Stats.GuestsByAnswer(r.Context(), category, accepted)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "guests by answer failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guests)
}

// ListAccommodations godoc
// @Summary List invitations with accommodation accepted
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/accommodations [get]
func (c *AdminController) ListAccommodations(w http.ResponseWriter, r *http.Request) {
	entries, err := c.Stats.ListAccommodations(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "list accommodations failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entries)
}

var csvHeader = []string{
	"invitation", "type", "confirmed_at", "guest",
	"mairie", "cocktail", "chateau", "brunch", "ai_consent",
	"accommodation", "accommodation_count", "regime", "allergy", "music",
}

// ExportCSV godoc
// @Summary Export all responses as CSV
// @Description One row per guest, with the owning invitation's fields repeated.
// @Tags admin
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/export [get]
func (c *AdminController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	invs, err := c.Stats.ListInvitations(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "export failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=responses.csv")

	cw := csv.NewWriter(w)
	_ = cw.Write(csvHeader)
	for _, iwg := range invs {
		inv := iwg.Invitation
		confirmed := ""
		if inv.ConfirmedAt != nil {
			confirmed = inv.ConfirmedAt.Format("2006-01-02 15:04")
		}
		count := ""
		if inv.AccommodationCount != nil {
			count = strconv.Itoa(*inv.AccommodationCount)
		}
		for _, g := range iwg.Guests {
			_ = cw.Write([]string{
				inv.Name, string(inv.Type), confirmed, g.Name,
				g.Mairie.String(), g.Cocktail.String(), g.Chateau.String(),
				strconv.FormatBool(g.Brunch), g.AIConsent.String(),
				inv.Accommodation.String(), count, inv.Regime, inv.Allergy, inv.Music,
			})
		}
	}
	cw.Flush()
}
