package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"weddingrsvp/internal/delivery/http/controllers"
	"weddingrsvp/internal/delivery/http/middleware"
	"weddingrsvp/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(rsvpController *controllers.RSVPController, adminController *controllers.AdminController, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	// Guest-facing routes
	mux.HandleFunc("GET /rsvp/{token}", rsvpController.Resolve)
	mux.HandleFunc("POST /rsvp/{token}", rsvpController.Submit)

	// Admin routes
	protect := middleware.RequireAuth(verifier, logger)
	mux.HandleFunc("POST /admin/login", adminController.Login)
	mux.HandleFunc("GET /admin/overview", protect(adminController.Overview))
	mux.HandleFunc("GET /admin/invitations", protect(adminController.ListInvitations))
	mux.HandleFunc("POST /admin/invitations", protect(adminController.CreateInvitation))
	mux.HandleFunc("GET /admin/guests", protect(adminController.GuestsByAnswer))
	mux.HandleFunc("GET /admin/accommodations", protect(adminController.ListAccommodations))
	mux.HandleFunc("GET /admin/export", protect(adminController.ExportCSV))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
