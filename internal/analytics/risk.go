package analytics

import "math"

// RiskMetrics holds the volatility and tail-risk measures of the daily
// return distribution. Undefined values are reported as NaN, never zero.
type RiskMetrics struct {
	DailyVolatility  float64 `json:"daily_volatility"`
	AnnualVolatility float64 `json:"annual_volatility"`
	ValueAtRisk95    float64 `json:"var_95"`
	ConditionalVaR95 float64 `json:"cvar_95"`
}

// CalculateRiskMetrics computes volatility, VaR and CVaR from the daily
// return series.
func CalculateRiskMetrics(series ReturnSeries) RiskMetrics {
	metrics := RiskMetrics{
		DailyVolatility:  sampleStdDev(series.Returns),
		ValueAtRisk95:    quantile(series.Returns, 0.05),
		ConditionalVaR95: math.NaN(),
	}
	metrics.AnnualVolatility = metrics.DailyVolatility * math.Sqrt(tradingDaysPerYear)

	// Tail expectation: mean of returns at or below the VaR threshold.
	if !math.IsNaN(metrics.ValueAtRisk95) {
		tail := make([]float64, 0)
		for _, r := range series.Returns {
			if r <= metrics.ValueAtRisk95 {
				tail = append(tail, r)
			}
		}
		metrics.ConditionalVaR95 = mean(tail)
	}
	return metrics
}
