package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FillSide represents the direction of an order fill
type FillSide string

const (
	FillSideBuy  FillSide = "buy"
	FillSideSell FillSide = "sell"
)

// ParseFillSide normalizes a raw side string into a FillSide
func ParseFillSide(raw string) FillSide {
	return FillSide(strings.ToLower(strings.TrimSpace(raw)))
}

// Fill represents a single order execution from the fill ledger.
// A zero Date marks a row whose stored date could not be parsed; such
// rows are kept in the sequence and excluded explicitly by consumers.
type Fill struct {
	Date       time.Time       `db:"date" json:"date"`
	Time       string          `db:"time" json:"time"` // normalized "HH:MM:SS"
	Instrument string          `db:"stockcode" json:"instrument"`
	Side       FillSide        `db:"buy_or_sell" json:"side"`
	Quantity   int64           `db:"quantity" json:"quantity"`
	Price      decimal.Decimal `db:"price" json:"price"`
	Fee        decimal.Decimal `db:"fee" json:"fee"`
	Strategy   string          `db:"strategy" json:"strategy"` // exit reason, present mainly on sell legs
	Profit     *float64        `db:"profit" json:"profit"`     // realized P&L, populated on sell legs
	ROI        *float64        `db:"roi" json:"roi"`           // fraction after load normalization
}

// HasValidDate reports whether the fill's stored date parsed successfully
func (f Fill) HasValidDate() bool {
	return !f.Date.IsZero()
}

// Timestamp combines the calendar date and the intraday time into a
// single timestamp. The zero time is returned when either part is invalid.
func (f Fill) Timestamp() time.Time {
	if !f.HasValidDate() {
		return time.Time{}
	}
	t, err := time.Parse("15:04:05", f.Time)
	if err != nil {
		return time.Time{}
	}
	return time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, f.Date.Location())
}

// NormalizeClockTime coerces "HH:MM" ledger times to "HH:MM:SS".
// Anything else is returned unchanged.
func NormalizeClockTime(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) == 5 {
		return s + ":00"
	}
	return s
}

// ParseLedgerDate parses dates stored either as compact digit strings
// ("20240514") or ISO strings ("2024-05-14"). Malformed values map to
// the zero time, the null-date marker, rather than being dropped.
func ParseLedgerDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	// Some exports append a midnight timestamp to the date column.
	if idx := strings.IndexByte(s, ' '); idx > 0 {
		s = s[:idx]
	}
	for _, layout := range []string{"2006-01-02", "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
