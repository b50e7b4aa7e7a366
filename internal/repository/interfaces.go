// Package repository provides data access for the fill ledger, the
// daily account overview and persisted metrics reports.
package repository

import (
	"context"

	"github.com/yourusername/tradescore/internal/analytics"
	"github.com/yourusername/tradescore/internal/models"
)

// FillRepository loads the raw order-fill ledger
type FillRepository interface {
	// LoadAll returns every fill, ordered by (date, instrument, time),
	// with percentages converted to fractions and times normalized.
	LoadAll(ctx context.Context) ([]models.Fill, error)
}

// AccountRepository loads the daily account overview
type AccountRepository interface {
	// LoadDaily returns the date-sorted daily account records with roi
	// converted from percentage to fraction.
	LoadDaily(ctx context.Context) ([]models.DailyAccountRecord, error)
}

// ReportRepository persists finished metrics reports
type ReportRepository interface {
	Save(ctx context.Context, report *analytics.MetricsReport) error
}
