package analytics

import (
	"math"
	"time"

	"github.com/yourusername/tradescore/internal/models"
)

const (
	tradingDaysPerYear = 252
	daysPerYear        = 365.25
)

// ReturnSeries is the ordered daily return series extracted from the
// account overview, the basis for every downstream metric. Records with
// null dates are excluded at construction and counted.
type ReturnSeries struct {
	Dates    []time.Time
	Returns  []float64 // daily roi fractions, aligned with Dates
	Excluded int       // account rows dropped for unparseable dates
}

// NewReturnSeries builds the return series from date-sorted account
// records, excluding null-date rows explicitly.
func NewReturnSeries(records []models.DailyAccountRecord) ReturnSeries {
	series := ReturnSeries{
		Dates:   make([]time.Time, 0, len(records)),
		Returns: make([]float64, 0, len(records)),
	}
	for _, rec := range records {
		if !rec.HasValidDate() {
			series.Excluded++
			continue
		}
		series.Dates = append(series.Dates, rec.Date)
		series.Returns = append(series.Returns, rec.ROI)
	}
	return series
}

// Len returns the number of trading days in the series
func (s ReturnSeries) Len() int {
	return len(s.Returns)
}

// CumulativeReturn compounds the daily returns over the whole series.
func (s ReturnSeries) CumulativeReturn() float64 {
	if s.Len() == 0 {
		return math.NaN()
	}
	wealth := 1.0
	for _, r := range s.Returns {
		wealth *= 1 + r
	}
	return wealth - 1
}

// ElapsedYears measures the calendar span of the series in years.
func (s ReturnSeries) ElapsedYears() float64 {
	if s.Len() < 2 {
		return math.NaN()
	}
	first := s.Dates[0]
	last := s.Dates[len(s.Dates)-1]
	return last.Sub(first).Hours() / 24 / daysPerYear
}

// CAGR geometrically annualizes the cumulative return. Undefined when
// the series spans fewer than two distinct dates or no elapsed time.
func (s ReturnSeries) CAGR() float64 {
	years := s.ElapsedYears()
	if math.IsNaN(years) || years <= 0 {
		return math.NaN()
	}
	return math.Pow(1+s.CumulativeReturn(), 1/years) - 1
}

// WealthIndex returns the running product of (1 + roi), the cumulative
// wealth curve. This is the single source of truth for the drawdown
// analyzer; it is not recomputed elsewhere.
func (s ReturnSeries) WealthIndex() []float64 {
	index := make([]float64, s.Len())
	wealth := 1.0
	for i, r := range s.Returns {
		wealth *= 1 + r
		index[i] = wealth
	}
	return index
}
