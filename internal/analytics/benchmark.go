package analytics

import (
	"math"
	"sort"
)

// BenchmarkMonthlyReturn is one externally supplied benchmark month.
type BenchmarkMonthlyReturn struct {
	Month  string  `json:"month"` // "YYYY-MM"
	Return float64 `json:"return"`
}

// BenchmarkComparison holds the regression-style comparison of the
// strategy's monthly returns against a benchmark series.
type BenchmarkComparison struct {
	Beta                 float64 `json:"beta"`
	Alpha                float64 `json:"alpha"`
	TrackingErrorMonthly float64 `json:"tracking_error_monthly"`
	TrackingErrorAnnual  float64 `json:"tracking_error_annual"`
	MonthsJoined         int     `json:"months_joined"`
}

// MonthlyReturns compounds the daily return series into per-calendar-
// month returns, keyed and sorted by "YYYY-MM".
func MonthlyReturns(series ReturnSeries) ([]string, []float64) {
	compounded := make(map[string]float64)
	months := make([]string, 0)
	for i, r := range series.Returns {
		month := series.Dates[i].Format("2006-01")
		if _, seen := compounded[month]; !seen {
			months = append(months, month)
			compounded[month] = 1.0
		}
		compounded[month] *= 1 + r
	}
	sort.Strings(months)
	returns := make([]float64, len(months))
	for i, m := range months {
		returns[i] = compounded[m] - 1
	}
	return months, returns
}

// CompareToBenchmark inner-joins the strategy's monthly returns with
// the benchmark series by month and computes beta, alpha and tracking
// error. Fewer than two joined months, or a zero-variance benchmark,
// leaves the measures undefined.
func CompareToBenchmark(series ReturnSeries, benchmark []BenchmarkMonthlyReturn) BenchmarkComparison {
	comparison := BenchmarkComparison{
		Beta:                 math.NaN(),
		Alpha:                math.NaN(),
		TrackingErrorMonthly: math.NaN(),
		TrackingErrorAnnual:  math.NaN(),
	}

	byMonth := make(map[string]float64, len(benchmark))
	for _, b := range benchmark {
		byMonth[b.Month] = b.Return
	}

	months, portfolio := MonthlyReturns(series)
	rp := make([]float64, 0, len(months))
	rb := make([]float64, 0, len(months))
	for i, m := range months {
		bench, ok := byMonth[m]
		if !ok {
			continue
		}
		rp = append(rp, portfolio[i])
		rb = append(rb, bench)
	}
	comparison.MonthsJoined = len(rp)
	if len(rp) < 2 {
		return comparison
	}

	varB := sampleVariance(rb)
	if math.IsNaN(varB) || varB == 0 {
		return comparison
	}
	comparison.Beta = sampleCovariance(rp, rb) / varB
	comparison.Alpha = mean(rp) - comparison.Beta*mean(rb)

	diffs := make([]float64, len(rp))
	for i := range rp {
		diffs[i] = rp[i] - rb[i]
	}
	comparison.TrackingErrorMonthly = sampleStdDev(diffs)
	comparison.TrackingErrorAnnual = comparison.TrackingErrorMonthly * math.Sqrt(12)
	return comparison
}
