package analytics

import (
	"math"
	"sort"
)

// RiskFreeSchedule maps calendar months ("YYYY-MM") to annualized
// risk-free rates. It is an explicit policy input passed in by the
// caller, not derived and not ambient.
type RiskFreeSchedule map[string]float64

// DailyRate converts the month's annual rate to a per-trading-day rate.
// The second return value is false when the month is not covered.
func (s RiskFreeSchedule) DailyRate(monthKey string) (float64, bool) {
	annual, ok := s[monthKey]
	if !ok {
		return 0, false
	}
	return math.Pow(1+annual, 1.0/tradingDaysPerYear) - 1, true
}

// PerformanceRatios holds the risk-adjusted return measures. Undefined
// ratios are NaN; ExcessSampleSize and MissingMonths document days that
// had to be excluded for lack of risk-free-rate coverage.
type PerformanceRatios struct {
	Sharpe           float64  `json:"sharpe"`
	Sortino          float64  `json:"sortino"`
	Calmar           float64  `json:"calmar"`
	RecoveryFactor   float64  `json:"recovery_factor"`
	UlcerIndex       float64  `json:"ulcer_index"`
	ExcessSampleSize int      `json:"excess_sample_size"`
	MissingMonths    []string `json:"missing_months,omitempty"`
}

// CalculatePerformanceRatios derives Sharpe, Sortino, Calmar, the
// recovery factor and the Ulcer index. Days whose month is absent from
// the risk-free schedule are excluded from the excess-return sample and
// reported, never silently zero-filled.
func CalculatePerformanceRatios(series ReturnSeries, drawdowns DrawdownAnalysis, riskFree RiskFreeSchedule) PerformanceRatios {
	ratios := PerformanceRatios{
		Sharpe:         math.NaN(),
		Sortino:        math.NaN(),
		Calmar:         math.NaN(),
		RecoveryFactor: math.NaN(),
		UlcerIndex:     drawdowns.UlcerIndex(),
	}

	excess := make([]float64, 0, series.Len())
	missing := make(map[string]struct{})
	for i, r := range series.Returns {
		month := series.Dates[i].Format("2006-01")
		rfDaily, ok := riskFree.DailyRate(month)
		if !ok {
			missing[month] = struct{}{}
			continue
		}
		excess = append(excess, r-rfDaily)
	}
	ratios.ExcessSampleSize = len(excess)
	for month := range missing {
		ratios.MissingMonths = append(ratios.MissingMonths, month)
	}
	sort.Strings(ratios.MissingMonths)

	meanExcess := mean(excess)
	if std := sampleStdDev(excess); !math.IsNaN(std) && std != 0 {
		ratios.Sharpe = meanExcess / std * math.Sqrt(tradingDaysPerYear)
	}

	// Downside deviation against the sample mean return, over the full
	// roi series, not only the excess sample.
	if dd := downsideDeviation(series.Returns); !math.IsNaN(dd) && dd != 0 {
		ratios.Sortino = meanExcess / dd * math.Sqrt(tradingDaysPerYear)
	}

	maxDD := drawdowns.MaxDrawdown
	if !math.IsNaN(maxDD) && maxDD != 0 {
		ratios.Calmar = series.CAGR() / math.Abs(maxDD)
		ratios.RecoveryFactor = series.CumulativeReturn() / math.Abs(maxDD)
	}
	return ratios
}

// downsideDeviation returns the sample standard deviation of the
// returns strictly below the mean return.
func downsideDeviation(returns []float64) float64 {
	m := mean(returns)
	if math.IsNaN(m) {
		return math.NaN()
	}
	below := make([]float64, 0)
	for _, r := range returns {
		if r < m {
			below = append(below, r)
		}
	}
	return sampleStdDev(below)
}
