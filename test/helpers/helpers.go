// Package helpers provides shared test fixtures and database seeding.
package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yourusername/tradescore/internal/database"
)

// LedgerRow is one fill row for seeding the trading table.
type LedgerRow struct {
	Date       string
	Time       string
	Instrument string
	Side       string
	Quantity   int64
	Price      float64
	Fee        float64
	Strategy   *string
	Profit     *float64
	ROIPercent *float64
}

// OverviewRow is one daily account row for seeding the overview table.
type OverviewRow struct {
	Date       string
	ROIPercent float64
	Turnover   float64
	Fee        float64
}

// SeedLedger recreates the trading and overview tables and inserts the
// given rows.
func SeedLedger(t *testing.T, ctx context.Context, db *database.DB, fills []LedgerRow, daily []OverviewRow) {
	t.Helper()

	setup := []string{
		`DROP TABLE IF EXISTS trading`,
		`DROP TABLE IF EXISTS overview`,
		`CREATE TABLE trading (
			date text, time text, stockcode text, buy_or_sell text,
			quantity bigint, price numeric, fee numeric,
			strategy text, profit double precision, roi double precision
		)`,
		`CREATE TABLE overview (date text, roi double precision, turnover numeric, fee numeric)`,
	}
	for _, stmt := range setup {
		_, err := db.GetPool().Exec(ctx, stmt)
		require.NoError(t, err)
	}

	for _, row := range fills {
		_, err := db.GetPool().Exec(ctx,
			`INSERT INTO trading VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			row.Date, row.Time, row.Instrument, row.Side,
			row.Quantity, row.Price, row.Fee, row.Strategy, row.Profit, row.ROIPercent)
		require.NoError(t, err)
	}
	for _, row := range daily {
		_, err := db.GetPool().Exec(ctx,
			`INSERT INTO overview VALUES ($1,$2,$3,$4)`,
			row.Date, row.ROIPercent, row.Turnover, row.Fee)
		require.NoError(t, err)
	}
}

// SeedReportsTable recreates the metrics_reports table.
func SeedReportsTable(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()

	setup := []string{
		`DROP TABLE IF EXISTS metrics_reports`,
		`CREATE TABLE metrics_reports (
			id uuid PRIMARY KEY, generated_at timestamptz, start_date timestamptz,
			end_date timestamptz, cumulative_return double precision,
			cagr double precision, sharpe double precision,
			max_drawdown double precision, report jsonb
		)`,
	}
	for _, stmt := range setup {
		_, err := db.GetPool().Exec(ctx, stmt)
		require.NoError(t, err)
	}
}

// LoadFixture loads test data from a JSON fixture file.
func LoadFixture(t *testing.T, filename string, target interface{}) {
	t.Helper()

	path := filepath.Join("testdata", filename)
	data, err := os.ReadFile(path)
	require.NoError(t, err, fmt.Sprintf("failed to read fixture %s", path))
	require.NoError(t, json.Unmarshal(data, target), "failed to decode fixture")
}

// StringPtr returns a pointer to the given string.
func StringPtr(s string) *string { return &s }

// FloatPtr returns a pointer to the given float64.
func FloatPtr(f float64) *float64 { return &f }
