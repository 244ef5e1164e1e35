// Package model defines database models for persistence layer.
package model

// AllModels lists every model migrated at startup.
func AllModels() []any {
	return []any{
		&TransactionModel{},
		&GoalModel{},
		&IssuedTokenModel{},
	}
}
