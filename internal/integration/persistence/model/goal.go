// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Image       string          `gorm:"type:varchar(500)"`
	Requirement string          `gorm:"type:text"`
	Target      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Current     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Completed   bool            `gorm:"not null;default:false;index"`
	StartDate   *time.Time      `gorm:"type:date"`
	CreatedAt   time.Time       `gorm:"not null;index"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity. The stored
// completed column is informational; the entity recomputes it.
func (m *GoalModel) ToEntity() *entity.Goal {
	return entity.RestoreGoal(entity.Goal{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Image:       m.Image,
		Requirement: m.Requirement,
		Target:      m.Target,
		StartDate:   m.StartDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, m.Current)
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:          goal.ID,
		Name:        goal.Name,
		Description: goal.Description,
		Image:       goal.Image,
		Requirement: goal.Requirement,
		Target:      goal.Target,
		Current:     goal.Current(),
		Completed:   goal.Completed(),
		StartDate:   goal.StartDate,
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
}
