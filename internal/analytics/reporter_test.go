package analytics

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tradescore/internal/models"
)

func TestConsoleReportMarksUndefined(t *testing.T) {
	report := &MetricsReport{
		CumulativeReturn: 0.0123,
		CAGR:             math.NaN(),
		MaxDrawdown:      -0.02,
	}
	report.Ratios.Sharpe = math.NaN()
	report.Trades.WinRate = 0.5
	report.Trades.AvgHoldingDays = math.NaN()
	report.Benchmark.Beta = math.NaN()

	out := GenerateConsoleReport(report)

	assert.Contains(t, out, "Cumulative Return: 1.23%")
	assert.Contains(t, out, "CAGR: n/a")
	assert.Contains(t, out, "Sharpe Ratio: n/a")
	assert.Contains(t, out, "Win Rate: 50.00%")
	assert.Contains(t, out, "Beta: n/a")
	assert.Contains(t, out, "Recovery Period: not yet recovered")
	assert.NotContains(t, out, "NaN")
}

func TestConsoleReportMissingRiskFreeNote(t *testing.T) {
	report := &MetricsReport{}
	report.Ratios.ExcessSampleSize = 18
	report.Ratios.MissingMonths = []string{"2024-05"}
	report.Diagnostics.AccountDays = 21

	out := GenerateConsoleReport(report)
	assert.Contains(t, out, "18/21 days in excess-return sample")
	assert.Contains(t, out, "2024-05")
}

func TestCSVExportBlanksUndefined(t *testing.T) {
	report := &MetricsReport{CumulativeReturn: 0.0123, CAGR: math.NaN()}
	path := filepath.Join(t.TempDir(), "metrics.csv")
	require.NoError(t, GenerateCSVExport(report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "metric,value\n"))
	assert.Contains(t, content, "cumulative_return,0.012300\n")
	assert.Contains(t, content, "cagr,\n")
	assert.Contains(t, content, "recovery_days,\n")
}

func TestTradesToCSV(t *testing.T) {
	trades := []models.Trade{
		{
			Instrument: "A005930",
			Quantity:   10,
			EntryTime:  day("2024-05-14").Add(9 * time.Hour),
			EntryPrice: decimal.NewFromInt(70000),
			ExitTime:   day("2024-05-14").Add(9*time.Hour + 10*time.Minute),
			ExitPrice:  decimal.NewFromInt(70500),
			ExitReason: "take_profit",
			EntryFee:   decimal.NewFromInt(15),
			ExitPnL:    100,
			ROI:        0.0071,
		},
	}

	out := TradesToCSV(trades)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,instrument,quantity,entry_time,entry_price,exit_time,exit_price,exit_reason,entry_fee,exit_pnl,roi", lines[0])
	assert.Equal(t, "2024-05-14,A005930,10,09:00:00,70000,09:10:00,70500,take_profit,15,100.00,0.007100", lines[1])
}

func TestWriteHoldingPeriods(t *testing.T) {
	trades := []models.Trade{
		{EntryTime: day("2024-05-14"), ExitTime: day("2024-05-14").Add(36 * time.Hour)},
	}
	path := filepath.Join(t.TempDir(), "out", "holding.txt")
	require.NoError(t, WriteHoldingPeriods(trades, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1.5\n", string(data))
}

func TestFormatHoldingPeriod(t *testing.T) {
	assert.Equal(t, "2.5 days", formatHoldingPeriod(2.5))
	assert.Equal(t, "6.0 hours", formatHoldingPeriod(0.25))
	assert.Equal(t, "12.5 minutes", formatHoldingPeriod(12.5/(24*60)))
	assert.Equal(t, "n/a", formatHoldingPeriod(math.NaN()))
}
