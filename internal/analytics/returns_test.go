package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tradescore/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dailyRecords(start string, rois ...float64) []models.DailyAccountRecord {
	records := make([]models.DailyAccountRecord, len(rois))
	d := day(start)
	for i, roi := range rois {
		records[i] = models.DailyAccountRecord{Date: d.AddDate(0, 0, i), ROI: roi}
	}
	return records
}

func TestNewReturnSeriesExcludesNullDates(t *testing.T) {
	records := dailyRecords("2024-05-14", 0.01, -0.02)
	records = append(records, models.DailyAccountRecord{ROI: 0.05}) // zero date

	series := NewReturnSeries(records)
	assert.Equal(t, 2, series.Len())
	assert.Equal(t, 1, series.Excluded)
}

func TestCumulativeReturnScenario(t *testing.T) {
	series := NewReturnSeries(dailyRecords("2024-05-14", 0.01, -0.02, 0.015))
	assert.InDelta(t, 1.01*0.98*1.015-1, series.CumulativeReturn(), 1e-12)
}

func TestWealthIndexRoundTrip(t *testing.T) {
	series := NewReturnSeries(dailyRecords("2024-05-14", 0.01, -0.02, 0.015, 0.003, -0.007))
	wealth := series.WealthIndex()
	require.Len(t, wealth, series.Len())
	assert.InDelta(t, series.CumulativeReturn()+1, wealth[len(wealth)-1], 1e-12)
}

func TestCAGRAnnualizes(t *testing.T) {
	records := []models.DailyAccountRecord{
		{Date: day("2023-01-01"), ROI: 0.10},
		{Date: day("2024-01-01"), ROI: 0.0},
	}
	series := NewReturnSeries(records)

	// 365 elapsed days over a 365.25-day year, compounded to 10%.
	years := 365.0 / 365.25
	assert.InDelta(t, years, series.ElapsedYears(), 1e-9)
	assert.InDelta(t, math.Pow(1.10, 1/years)-1, series.CAGR(), 1e-12)
}

func TestCAGRUndefinedForShortSeries(t *testing.T) {
	assert.True(t, math.IsNaN(NewReturnSeries(nil).CAGR()))

	single := NewReturnSeries(dailyRecords("2024-05-14", 0.01))
	assert.True(t, math.IsNaN(single.ElapsedYears()))
	assert.True(t, math.IsNaN(single.CAGR()))

	// Two records on the same date: no elapsed time.
	sameDay := NewReturnSeries([]models.DailyAccountRecord{
		{Date: day("2024-05-14"), ROI: 0.01},
		{Date: day("2024-05-14"), ROI: 0.02},
	})
	assert.True(t, math.IsNaN(sameDay.CAGR()))
}
