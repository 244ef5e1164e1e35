// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/finance-tracker/companion/internal/integration/persistence/model"
)

// TokenRepository defines the interface for issued token persistence operations.
type TokenRepository interface {
	// SaveIssuedToken records a newly signed token.
	SaveIssuedToken(ctx context.Context, tokenID, subject string, expiresAt time.Time) error

	// IsTokenActive checks if a token exists, is not revoked and has not expired.
	IsTokenActive(ctx context.Context, tokenID string) (bool, error)

	// RevokeToken marks a single token as revoked.
	RevokeToken(ctx context.Context, tokenID string) error

	// RevokeAllForSubject revokes every token issued to subject.
	RevokeAllForSubject(ctx context.Context, subject string) (int64, error)
}

// tokenRepository implements the TokenRepository interface.
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{
		db: db,
	}
}

// SaveIssuedToken records a newly signed token.
func (r *tokenRepository) SaveIssuedToken(ctx context.Context, tokenID, subject string, expiresAt time.Time) error {
	issued := &model.IssuedTokenModel{
		ID:        tokenID,
		Subject:   subject,
		Revoked:   false,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).Create(issued)
	return result.Error
}

// IsTokenActive checks if a token exists, is not revoked and has not expired.
func (r *tokenRepository) IsTokenActive(ctx context.Context, tokenID string) (bool, error) {
	var issued model.IssuedTokenModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND revoked = ? AND expires_at > ?", tokenID, false, time.Now().UTC()).
		First(&issued)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

// RevokeToken marks a single token as revoked.
func (r *tokenRepository) RevokeToken(ctx context.Context, tokenID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.IssuedTokenModel{}).
		Where("id = ?", tokenID).
		Update("revoked", true)
	return result.Error
}

// RevokeAllForSubject revokes every token issued to subject.
func (r *tokenRepository) RevokeAllForSubject(ctx context.Context, subject string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.IssuedTokenModel{}).
		Where("subject = ? AND revoked = ?", subject, false).
		Update("revoked", true)
	return result.RowsAffected, result.Error
}
