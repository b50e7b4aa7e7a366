package repository

import (
	"fmt"

	"github.com/yourusername/tradescore/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Fill    FillRepository
	Account AccountRepository
	Report  ReportRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Fill:    NewPostgresFillRepository(db),
		Account: NewPostgresAccountRepository(db),
		Report:  NewPostgresReportRepository(db),
	}, nil
}
