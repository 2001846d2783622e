package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateToken returns a new high-entropy share token (16 random bytes, hex).
// The raw token appears only in the share link; the store keeps its digest.
func GenerateToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashToken returns the SHA-256 hex digest used as the invitation lookup key.
// This is a plain one-way hash, not an HMAC: token entropy is what resists
// guessing, the digest only keeps raw tokens out of the store.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
