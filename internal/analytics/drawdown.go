package analytics

import (
	"math"
	"time"
)

// DrawdownPoint is one date of the drawdown series derived from the
// cumulative wealth index. Drawdown is always <= 0.
type DrawdownPoint struct {
	Date        time.Time `json:"date"`
	WealthIndex float64   `json:"wealth_index"`
	RollingMax  float64   `json:"rolling_max"`
	Drawdown    float64   `json:"drawdown"`
}

// DrawdownAnalysis aggregates the drawdown series and its scalar
// summaries. RecoveryDays is nil while the maximum drawdown has not
// yet been recovered.
type DrawdownAnalysis struct {
	Series          []DrawdownPoint `json:"series"`
	MaxDrawdown     float64         `json:"max_drawdown"`
	MaxDrawdownDate time.Time       `json:"max_drawdown_date"`
	RecoveryDays    *int            `json:"recovery_days"`
	MaxDurationDays int             `json:"max_duration_days"`
}

// AnalyzeDrawdowns builds the drawdown series from the return series'
// wealth index and derives max drawdown, the recovery period and the
// longest drawdown spell.
func AnalyzeDrawdowns(series ReturnSeries) DrawdownAnalysis {
	wealth := series.WealthIndex()
	analysis := DrawdownAnalysis{
		Series:      make([]DrawdownPoint, len(wealth)),
		MaxDrawdown: math.NaN(),
	}
	if len(wealth) == 0 {
		return analysis
	}

	rollingMax := wealth[0]
	minDD := 0.0
	minIdx := 0
	for i, w := range wealth {
		if w > rollingMax {
			rollingMax = w
		}
		dd := w/rollingMax - 1
		analysis.Series[i] = DrawdownPoint{
			Date:        series.Dates[i],
			WealthIndex: w,
			RollingMax:  rollingMax,
			Drawdown:    dd,
		}
		if dd < minDD {
			minDD = dd
			minIdx = i
		}
	}
	analysis.MaxDrawdown = minDD
	analysis.MaxDrawdownDate = series.Dates[minIdx]
	analysis.RecoveryDays = recoveryPeriod(analysis.Series, minIdx)
	analysis.MaxDurationDays = maxDrawdownDuration(analysis.Series)
	return analysis
}

// UlcerIndex is the root mean square of the drawdown series, penalizing
// both depth and duration of decline.
func (a DrawdownAnalysis) UlcerIndex() float64 {
	if len(a.Series) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, p := range a.Series {
		sum += p.Drawdown * p.Drawdown
	}
	return math.Sqrt(sum / float64(len(a.Series)))
}

// recoveryPeriod scans forward from the trough for the first date back
// at or above the running peak and returns the day-count gap. Nil means
// not yet recovered.
func recoveryPeriod(series []DrawdownPoint, troughIdx int) *int {
	trough := series[troughIdx].Date
	for _, p := range series[troughIdx:] {
		if p.Drawdown >= 0 {
			days := int(p.Date.Sub(trough).Hours() / 24)
			return &days
		}
	}
	return nil
}

// maxDrawdownDuration partitions the series into maximal runs of
// negative drawdown. A terminated run ends on its recovery date; an
// unterminated trailing run ends on the series' last date.
func maxDrawdownDuration(series []DrawdownPoint) int {
	maxDays := 0
	inDrawdown := false
	var start time.Time
	for _, p := range series {
		switch {
		case p.Drawdown < 0 && !inDrawdown:
			inDrawdown = true
			start = p.Date
		case p.Drawdown >= 0 && inDrawdown:
			inDrawdown = false
			if days := int(p.Date.Sub(start).Hours() / 24); days > maxDays {
				maxDays = days
			}
		}
	}
	if inDrawdown {
		last := series[len(series)-1].Date
		if days := int(last.Sub(start).Hours() / 24); days > maxDays {
			maxDays = days
		}
	}
	return maxDays
}
