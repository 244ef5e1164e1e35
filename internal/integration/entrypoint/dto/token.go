// Package dto defines data transfer objects for API requests and responses.
package dto

import "time"

// TokenResponse represents a newly issued bearer token.
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"token_id"`
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expires_at"`
}
