package domain

import (
	"context"
	"time"
)

// AdminAccount is a dashboard login. Passwords are stored as salted bcrypt
// hashes, never as a bare digest of the plaintext.
type AdminAccount struct {
	ID           string
	Login        string
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
}

// AdminRepository defines storage operations for admin accounts.
type AdminRepository interface {
	GetByLogin(ctx context.Context, login string) (*AdminAccount, error)
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues session credentials (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(adminID, login string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session credential and returns the admin ID.
type TokenVerifier interface {
	Verify(token string) (adminID string, err error)
}

// AuthService authenticates dashboard admins. Every protected request is
// verified server-side against the issued credential; presence of a
// client-side marker is never trusted on its own.
type AuthService interface {
	Login(ctx context.Context, login, password string) (token string, err error)
}
