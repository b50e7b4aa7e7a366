package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskFreeDailyRate(t *testing.T) {
	schedule := RiskFreeSchedule{"2024-05": 0.0365}

	daily, ok := schedule.DailyRate("2024-05")
	require.True(t, ok)
	assert.InDelta(t, math.Pow(1.0365, 1.0/252)-1, daily, 1e-15)

	_, ok = schedule.DailyRate("2024-06")
	assert.False(t, ok)
}

func TestPerformanceRatiosSharpeAndSortino(t *testing.T) {
	series := NewReturnSeries(dailyRecords("2024-05-13", 0.02, -0.01, -0.02, 0.03))
	drawdowns := AnalyzeDrawdowns(series)
	schedule := RiskFreeSchedule{"2024-05": 0}

	ratios := CalculatePerformanceRatios(series, drawdowns, schedule)

	// mean 0.005, sample stddev sqrt(0.0017/3).
	wantSharpe := 0.005 / math.Sqrt(0.0017/3) * math.Sqrt(252)
	assert.InDelta(t, wantSharpe, ratios.Sharpe, 1e-9)
	assert.InDelta(t, 3.3343, ratios.Sharpe, 1e-3)

	// Below-mean returns are -0.01 and -0.02; their sample stddev is
	// sqrt(0.00005).
	wantSortino := 0.005 / math.Sqrt(0.00005) * math.Sqrt(252)
	assert.InDelta(t, wantSortino, ratios.Sortino, 1e-9)

	assert.Equal(t, 4, ratios.ExcessSampleSize)
	assert.Empty(t, ratios.MissingMonths)
}

func TestPerformanceRatiosZeroVariance(t *testing.T) {
	series := NewReturnSeries(dailyRecords("2024-05-13", 0.01, 0.01, 0.01))
	ratios := CalculatePerformanceRatios(series, AnalyzeDrawdowns(series), RiskFreeSchedule{"2024-05": 0})

	assert.True(t, math.IsNaN(ratios.Sharpe), "zero dispersion leaves Sharpe undefined")
	assert.True(t, math.IsNaN(ratios.Sortino), "no below-mean days leaves Sortino undefined")
}

func TestPerformanceRatiosExcludesUncoveredMonths(t *testing.T) {
	records := dailyRecords("2024-05-30", 0.01, 0.02)
	records = append(records, dailyRecords("2024-06-03", -0.01, 0.03, 0.02)...)
	series := NewReturnSeries(records)
	schedule := RiskFreeSchedule{"2024-06": 0.03}

	ratios := CalculatePerformanceRatios(series, AnalyzeDrawdowns(series), schedule)

	assert.Equal(t, 3, ratios.ExcessSampleSize)
	assert.Equal(t, []string{"2024-05"}, ratios.MissingMonths)
	assert.False(t, math.IsNaN(ratios.Sharpe))
}

func TestPerformanceRatiosUndefinedWithoutDrawdown(t *testing.T) {
	series := NewReturnSeries(dailyRecords("2024-05-13", 0.01, 0.02, 0.015))
	ratios := CalculatePerformanceRatios(series, AnalyzeDrawdowns(series), RiskFreeSchedule{"2024-05": 0})

	assert.True(t, math.IsNaN(ratios.Calmar))
	assert.True(t, math.IsNaN(ratios.RecoveryFactor))
	assert.InDelta(t, 0, ratios.UlcerIndex, 1e-12)
}

func TestPerformanceRatiosCalmarAgainstMaxDrawdown(t *testing.T) {
	series := NewReturnSeries(dailyRecords("2024-05-13", 0.05, -0.10, 0.08, 0.05))
	drawdowns := AnalyzeDrawdowns(series)
	ratios := CalculatePerformanceRatios(series, drawdowns, RiskFreeSchedule{"2024-05": 0})

	require.InDelta(t, -0.10, drawdowns.MaxDrawdown, 1e-12)
	assert.InDelta(t, series.CAGR()/0.10, ratios.Calmar, 1e-9)
	assert.InDelta(t, series.CumulativeReturn()/0.10, ratios.RecoveryFactor, 1e-9)
}
