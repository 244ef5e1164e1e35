// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// TokenClaims represents the claims contained in a bearer token.
type TokenClaims struct {
	ID        string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService defines the interface for bearer token operations.
type TokenService interface {
	// GenerateToken signs and records a new token for subject.
	GenerateToken(ctx context.Context, subject string) (string, *TokenClaims, error)

	// ValidateToken validates a token and returns its claims. Revoked
	// tokens are rejected.
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)

	// RevokeToken revokes a single token by its ID.
	RevokeToken(ctx context.Context, tokenID string) error

	// RevokeSubject revokes every token issued to subject and returns how
	// many were revoked.
	RevokeSubject(ctx context.Context, subject string) (int64, error)
}
