// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Note      string          `gorm:"type:text"`
	Category  string          `gorm:"type:varchar(100);not null;index"`
	Kind      string          `gorm:"type:varchar(10);not null;index"`
	Direction string          `gorm:"type:varchar(10);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date      time.Time       `gorm:"type:date;not null;index"`
	CreatedAt time.Time       `gorm:"not null;index"`
	UpdatedAt time.Time       `gorm:"not null"`
	DeletedAt gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
// Direction is re-derived from kind rather than trusted from the row.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	kind := entity.TransactionKind(m.Kind)

	return &entity.Transaction{
		ID:        m.ID,
		Name:      m.Name,
		Note:      m.Note,
		Category:  m.Category,
		Kind:      kind,
		Direction: entity.DirectionForKind(kind),
		Amount:    m.Amount,
		Date:      entity.TruncateToDate(m.Date),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:        t.ID,
		Name:      t.Name,
		Note:      t.Note,
		Category:  t.Category,
		Kind:      string(t.Kind),
		Direction: string(entity.DirectionForKind(t.Kind)),
		Amount:    t.Amount,
		Date:      entity.TruncateToDate(t.Date),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
