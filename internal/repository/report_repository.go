package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/yourusername/tradescore/internal/analytics"
	"github.com/yourusername/tradescore/internal/database"
)

// PostgresReportRepository implements ReportRepository for PostgreSQL
type PostgresReportRepository struct {
	db *database.DB
}

// NewPostgresReportRepository creates a new report repository
func NewPostgresReportRepository(db *database.DB) ReportRepository {
	return &PostgresReportRepository{db: db}
}

// Save persists the report: headline scalars as columns for querying,
// the full report as JSON. Undefined metrics store as NULL.
func (r *PostgresReportRepository) Save(ctx context.Context, report *analytics.MetricsReport) error {
	payload, err := report.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	query := `
		INSERT INTO metrics_reports (id, generated_at, start_date, end_date,
		                             cumulative_return, cagr, sharpe, max_drawdown, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.GetPool().Exec(ctx, query,
		report.RunID,
		report.GeneratedAt,
		report.StartDate,
		report.EndDate,
		nullIfNaN(report.CumulativeReturn),
		nullIfNaN(report.CAGR),
		nullIfNaN(report.Ratios.Sharpe),
		nullIfNaN(report.MaxDrawdown),
		payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func nullIfNaN(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
