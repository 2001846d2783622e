package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weddingrsvp/internal/domain"
)

type authService struct {
	adminRepo   domain.AdminRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
}

// NewAuthService creates the admin authentication service.
func NewAuthService(adminRepo domain.AdminRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		adminRepo:   adminRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) Login(ctx context.Context, login, password string) (string, error) {
	login = strings.TrimSpace(strings.ToLower(login))
	if login == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	account, err := s.adminRepo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("get admin account: %w", err)
	}

	if err := s.hasher.Compare(account.PasswordHash, account.Salt, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(account.ID, account.Login, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
