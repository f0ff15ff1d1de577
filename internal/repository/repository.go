// Package repository provides PostgreSQL persistence for historical trades
// and completed validation runs.
package repository

import (
	"fmt"

	"github.com/yourusername/walkforward/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Trade         TradeRepository
	ValidationRun ValidationRunRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Trade:         NewPostgresTradeRepository(db),
		ValidationRun: NewPostgresValidationRunRepository(db),
	}, nil
}
