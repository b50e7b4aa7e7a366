package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/tradescore/internal/database"
	"github.com/yourusername/tradescore/internal/models"
)

// PostgresAccountRepository implements AccountRepository for PostgreSQL
type PostgresAccountRepository struct {
	db *database.DB
}

// NewPostgresAccountRepository creates a new account repository
func NewPostgresAccountRepository(db *database.DB) AccountRepository {
	return &PostgresAccountRepository{db: db}
}

// LoadDaily reads the full account overview, date-sorted, with roi
// converted from percentage to fraction at load time.
func (r *PostgresAccountRepository) LoadDaily(ctx context.Context) ([]models.DailyAccountRecord, error) {
	query := `
		SELECT date::text, roi, turnover::text, fee::text
		FROM overview
		ORDER BY date
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query overview table: %w", err)
	}
	defer rows.Close()

	records := make([]models.DailyAccountRecord, 0)
	for rows.Next() {
		var (
			rawDate             string
			roi                 float64
			rawTurnover, rawFee string
		)
		if err := rows.Scan(&rawDate, &roi, &rawTurnover, &rawFee); err != nil {
			return nil, fmt.Errorf("failed to scan overview row: %w", err)
		}

		rec := models.DailyAccountRecord{
			Date: models.ParseLedgerDate(rawDate),
			ROI:  roi / 100,
		}
		if rec.Turnover, err = decimal.NewFromString(rawTurnover); err != nil {
			return nil, fmt.Errorf("invalid turnover %q: %w", rawTurnover, err)
		}
		if rec.Fee, err = decimal.NewFromString(rawFee); err != nil {
			return nil, fmt.Errorf("invalid fee %q: %w", rawFee, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read overview table: %w", err)
	}
	return records, nil
}
