package main

import (
	"database/sql"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	"weddingrsvp/config"
	authadapter "weddingrsvp/internal/adapters/auth"
	emailadapter "weddingrsvp/internal/adapters/email"
	delivery "weddingrsvp/internal/delivery/http"
	"weddingrsvp/internal/delivery/http/controllers"
	"weddingrsvp/internal/delivery/http/middleware"
	"weddingrsvp/internal/repository/postgres"
	"weddingrsvp/internal/services"
)

const bcryptCost = 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	// Repositories
	invitationRepo := postgres.NewInvitationRepository(db)
	guestRepo := postgres.NewGuestRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	// Adapters
	hasher := authadapter.NewBcryptHasher(bcryptCost)
	signer := authadapter.NewJWTSigner(cfg.JWTSecret)
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		log.Fatalf("Failed to create mailer: %v", err)
	}

	// Services
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())
	rsvpService := services.NewRSVPService(invitationRepo, guestRepo, emailService, cfg.NotifyAddress)
	statsService := services.NewStatsService(invitationRepo, guestRepo)
	provisioningService := services.NewProvisioningService(invitationRepo, guestRepo, cfg.BaseURL)
	authService := services.NewAuthService(adminRepo, hasher, signer, cfg.TokenExpiry)

	// Controllers and router
	rsvpController := controllers.NewRSVPController(logger, rsvpService)
	adminController := controllers.NewAdminController(logger, authService, statsService, provisioningService)
	mux := delivery.NewRouter(rsvpController, adminController, signer, logger)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux))

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
