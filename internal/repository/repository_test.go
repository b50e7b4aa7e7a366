package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tradescore/internal/database"
)

func TestNewRepositoriesRequiresDB(t *testing.T) {
	_, err := NewRepositories(nil)
	require.Error(t, err)
}

// Integration coverage: requires TRADESCORE_TEST_DB (see database.SetupTestDB).
func TestLoadLedgerRoundTrip(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	setup := []string{
		`DROP TABLE IF EXISTS trading`,
		`DROP TABLE IF EXISTS overview`,
		`CREATE TABLE trading (
			date text, time text, stockcode text, buy_or_sell text,
			quantity bigint, price numeric, fee numeric,
			strategy text, profit double precision, roi double precision
		)`,
		`CREATE TABLE overview (date text, roi double precision, turnover numeric, fee numeric)`,
		`INSERT INTO trading VALUES
			('20240514','09:00:00','A005930','buy',10,70000,35,NULL,NULL,NULL),
			('20240514','09:10','A005930','sell',10,70500,35,'take_profit',4930,0.70)`,
		`INSERT INTO overview VALUES
			('2024-05-14',0.70,1405000,70),
			('2024-05-16',-0.20,900000,45)`,
	}
	for _, stmt := range setup {
		_, err := db.GetPool().Exec(ctx, stmt)
		require.NoError(t, err)
	}

	repos, err := NewRepositories(db)
	require.NoError(t, err)

	fills, err := repos.Fill.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, fills, 2)
	assert.Equal(t, "09:10:00", fills[1].Time, "HH:MM must normalize to HH:MM:SS")
	assert.True(t, fills[0].HasValidDate(), "compact date must parse")
	require.NotNil(t, fills[1].ROI)
	assert.InDelta(t, 0.0070, *fills[1].ROI, 1e-9, "roi must convert to fraction")
	assert.Equal(t, "70000", fills[0].Price.String())

	daily, err := repos.Account.LoadDaily(ctx)
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.InDelta(t, 0.0070, daily[0].ROI, 1e-9)
	assert.Equal(t, "1405000", daily[0].Turnover.String())
}

func TestLoadFillsMissingTableIsFatal(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	ctx := context.Background()
	_, err := db.GetPool().Exec(ctx, `DROP TABLE IF EXISTS trading`)
	require.NoError(t, err)

	repos, err := NewRepositories(db)
	require.NoError(t, err)

	_, err = repos.Fill.LoadAll(ctx)
	require.Error(t, err, "absent table must surface immediately")
}
