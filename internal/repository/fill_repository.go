package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/tradescore/internal/database"
	"github.com/yourusername/tradescore/internal/models"
)

// PostgresFillRepository implements FillRepository for PostgreSQL
type PostgresFillRepository struct {
	db *database.DB
}

// NewPostgresFillRepository creates a new fill repository
func NewPostgresFillRepository(db *database.DB) FillRepository {
	return &PostgresFillRepository{db: db}
}

// LoadAll reads the full trading ledger. ROI percentages become
// fractions, "HH:MM" times become "HH:MM:SS", and unparseable dates
// become the zero-time marker rather than being dropped here.
func (r *PostgresFillRepository) LoadAll(ctx context.Context) ([]models.Fill, error) {
	query := `
		SELECT date::text, time::text, stockcode, buy_or_sell, quantity,
		       price::text, fee::text, strategy, profit, roi
		FROM trading
		ORDER BY date, stockcode, time
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trading table: %w", err)
	}
	defer rows.Close()

	fills := make([]models.Fill, 0)
	for rows.Next() {
		var (
			rawDate, rawTime, side string
			instrument             string
			quantity               int64
			rawPrice, rawFee       string
			strategy               *string
			profit, roi            *float64
		)
		if err := rows.Scan(&rawDate, &rawTime, &instrument, &side, &quantity,
			&rawPrice, &rawFee, &strategy, &profit, &roi); err != nil {
			return nil, fmt.Errorf("failed to scan fill row: %w", err)
		}

		fill := models.Fill{
			Date:       models.ParseLedgerDate(rawDate),
			Time:       models.NormalizeClockTime(rawTime),
			Instrument: instrument,
			Side:       models.ParseFillSide(side),
			Quantity:   quantity,
			Profit:     profit,
		}
		if strategy != nil {
			fill.Strategy = *strategy
		}
		if roi != nil {
			fraction := *roi / 100
			fill.ROI = &fraction
		}
		if fill.Price, err = decimal.NewFromString(rawPrice); err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", rawPrice, err)
		}
		if fill.Fee, err = decimal.NewFromString(rawFee); err != nil {
			return nil, fmt.Errorf("invalid fee %q: %w", rawFee, err)
		}
		fills = append(fills, fill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trading table: %w", err)
	}
	return fills, nil
}
