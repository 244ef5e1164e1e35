// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finance-tracker/companion/internal/application/adapter"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
	"github.com/finance-tracker/companion/internal/integration/persistence"
)

const (
	// defaultTokenDuration is used when no expiry is configured.
	defaultTokenDuration = 30 * 24 * time.Hour

	tokenIssuer = "finance-companion"
)

// tokenService implements the adapter.TokenService interface with HS256 JWTs.
// Every issued token is recorded so it can be revoked before it expires.
type tokenService struct {
	secret          []byte
	duration        time.Duration
	tokenRepository persistence.TokenRepository
	now             func() time.Time
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string, duration time.Duration, tokenRepository persistence.TokenRepository) adapter.TokenService {
	if duration <= 0 {
		duration = defaultTokenDuration
	}
	return &tokenService{
		secret:          []byte(secret),
		duration:        duration,
		tokenRepository: tokenRepository,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// GenerateToken signs and records a new token for subject.
func (s *tokenService) GenerateToken(ctx context.Context, subject string) (string, *adapter.TokenClaims, error) {
	if len(s.secret) == 0 {
		return "", nil, domainerror.ErrMissingSigningSecret
	}

	now := s.now().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.tokenRepository.SaveIssuedToken(ctx, claims.ID, subject, claims.ExpiresAt.Time); err != nil {
		return "", nil, fmt.Errorf("failed to save issued token: %w", err)
	}

	return token, &adapter.TokenClaims{
		ID:        claims.ID,
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ValidateToken validates a token and returns its claims.
func (s *tokenService) ValidateToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.parseJWT(token)
	if err != nil {
		return nil, err
	}

	active, err := s.tokenRepository.IsTokenActive(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token: %w", err)
	}
	if !active {
		return nil, domainerror.ErrInvalidToken
	}

	result := &adapter.TokenClaims{
		ID:      claims.ID,
		Subject: claims.Subject,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}

// RevokeToken revokes a single token by its ID.
func (s *tokenService) RevokeToken(ctx context.Context, tokenID string) error {
	return s.tokenRepository.RevokeToken(ctx, tokenID)
}

// RevokeSubject revokes every token issued to subject.
func (s *tokenService) RevokeSubject(ctx context.Context, subject string) (int64, error) {
	return s.tokenRepository.RevokeAllForSubject(ctx, subject)
}

// parseJWT parses and validates a JWT token.
func (s *tokenService) parseJWT(tokenString string) (*jwt.RegisteredClaims, error) {
	if len(s.secret) == 0 {
		return nil, domainerror.ErrMissingSigningSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", domainerror.ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %w", domainerror.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, domainerror.ErrInvalidToken
	}

	return claims, nil
}
