package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyAccountRecord represents one row of the daily account overview.
// ROI is stored as a percentage in the ledger and converted to a
// fraction at load time; every downstream component consumes fractions.
type DailyAccountRecord struct {
	Date     time.Time       `db:"date" json:"date"`
	ROI      float64         `db:"roi" json:"roi"` // fraction
	Turnover decimal.Decimal `db:"turnover" json:"turnover"`
	Fee      decimal.Decimal `db:"fee" json:"fee"`
}

// HasValidDate reports whether the record's stored date parsed successfully
func (r DailyAccountRecord) HasValidDate() bool {
	return !r.Date.IsZero()
}

// MonthKey returns the "YYYY-MM" key used for risk-free-rate lookups
// and monthly benchmark aggregation. Empty for null-date records.
func (r DailyAccountRecord) MonthKey() string {
	if !r.HasValidDate() {
		return ""
	}
	return r.Date.Format("2006-01")
}
