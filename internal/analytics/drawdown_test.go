package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawdownScenarioTrace(t *testing.T) {
	// wealth [1.01, 0.9898, 1.004647], rolling max stays at 1.01.
	series := NewReturnSeries(dailyRecords("2024-05-14", 0.01, -0.02, 0.015))
	analysis := AnalyzeDrawdowns(series)

	require.Len(t, analysis.Series, 3)
	assert.InDelta(t, 0.0, analysis.Series[0].Drawdown, 1e-12)
	assert.InDelta(t, -0.02, analysis.Series[1].Drawdown, 1e-12)
	assert.InDelta(t, 1.01*0.98*1.015/1.01-1, analysis.Series[2].Drawdown, 1e-12)

	assert.InDelta(t, -0.02, analysis.MaxDrawdown, 1e-12)
	assert.Equal(t, day("2024-05-15"), analysis.MaxDrawdownDate)
	assert.Nil(t, analysis.RecoveryDays, "never back at the peak")
	assert.Equal(t, 1, analysis.MaxDurationDays, "trailing run ends on the last date")
}

func TestDrawdownAlwaysNonPositive(t *testing.T) {
	series := NewReturnSeries(dailyRecords("2024-01-01",
		0.02, -0.05, 0.01, 0.07, -0.01, -0.03, 0.10, -0.08))
	analysis := AnalyzeDrawdowns(series)

	minDD := 0.0
	for _, p := range analysis.Series {
		assert.LessOrEqual(t, p.Drawdown, 0.0)
		assert.InDelta(t, p.WealthIndex/p.RollingMax-1, p.Drawdown, 1e-12)
		if p.Drawdown < minDD {
			minDD = p.Drawdown
		}
	}
	assert.InDelta(t, minDD, analysis.MaxDrawdown, 1e-12)
}

func TestDrawdownRecoveryPeriod(t *testing.T) {
	// Trough on day 2, back above the old peak on day 4.
	series := NewReturnSeries(dailyRecords("2024-03-01", 0.05, -0.10, 0.08, 0.05))
	analysis := AnalyzeDrawdowns(series)

	assert.InDelta(t, -0.10, analysis.MaxDrawdown, 1e-9)
	assert.Equal(t, day("2024-03-02"), analysis.MaxDrawdownDate)
	require.NotNil(t, analysis.RecoveryDays)
	assert.Equal(t, 2, *analysis.RecoveryDays)

	// The spell runs from the trough to its recovery date.
	assert.Equal(t, 2, analysis.MaxDurationDays)
}

func TestDrawdownNeverNegative(t *testing.T) {
	series := NewReturnSeries(dailyRecords("2024-03-01", 0.01, 0.02, 0.005))
	analysis := AnalyzeDrawdowns(series)

	assert.Equal(t, 0.0, analysis.MaxDrawdown)
	require.NotNil(t, analysis.RecoveryDays)
	assert.Equal(t, 0, *analysis.RecoveryDays, "a flat drawdown recovers immediately")
	assert.Equal(t, 0, analysis.MaxDurationDays)
}

func TestDrawdownPicksLongestSpell(t *testing.T) {
	// First spell: days 2-3 (recovered day 4, 2 days). Second spell:
	// days 5-8 unterminated (3 days to the last date).
	series := NewReturnSeries(dailyRecords("2024-03-01",
		0.02, -0.01, -0.01, 0.05, -0.02, -0.01, -0.01, 0.01))
	analysis := AnalyzeDrawdowns(series)
	assert.Equal(t, 3, analysis.MaxDurationDays)
}

func TestUlcerIndex(t *testing.T) {
	series := NewReturnSeries(dailyRecords("2024-05-14", 0.01, -0.02, 0.015))
	analysis := AnalyzeDrawdowns(series)

	sum := 0.0
	for _, p := range analysis.Series {
		sum += p.Drawdown * p.Drawdown
	}
	assert.InDelta(t, math.Sqrt(sum/3), analysis.UlcerIndex(), 1e-12)

	empty := AnalyzeDrawdowns(NewReturnSeries(nil))
	assert.True(t, math.IsNaN(empty.UlcerIndex()))
	assert.True(t, math.IsNaN(empty.MaxDrawdown))
}
