// Package model defines database models for persistence layer.
package model

import (
	"time"
)

// IssuedTokenModel represents the issued_tokens table in the database.
// Rows record bearer tokens so they can be revoked before they expire.
type IssuedTokenModel struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	Subject   string    `gorm:"type:varchar(255);not null;index"`
	Revoked   bool      `gorm:"not null;default:false"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the IssuedTokenModel.
func (IssuedTokenModel) TableName() string {
	return "issued_tokens"
}
