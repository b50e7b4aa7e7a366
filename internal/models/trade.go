package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade represents a completed round-trip trade reconstructed from a
// buy fill and a sell fill on the same instrument and calendar day.
// Trades are created only by the reconstructor and read-only thereafter.
type Trade struct {
	Instrument string          `db:"stockcode" json:"instrument"`
	Quantity   int64           `db:"quantity" json:"quantity"` // from the matched buy leg
	EntryTime  time.Time       `db:"entry_time" json:"entry_time"`
	EntryPrice decimal.Decimal `db:"entry_price" json:"entry_price"`
	ExitTime   time.Time       `db:"exit_time" json:"exit_time"`
	ExitPrice  decimal.Decimal `db:"exit_price" json:"exit_price"`
	ExitReason string          `db:"exit_reason" json:"exit_reason"` // sell leg's strategy tag
	EntryFee   decimal.Decimal `db:"entry_fee" json:"entry_fee"`
	ExitPnL    float64         `db:"exit_pnl" json:"exit_pnl"` // sell leg's profit
	ROI        float64         `db:"roi" json:"roi"`           // sell leg's roi, fraction
}

// HoldingPeriod returns the time the position was held
func (t Trade) HoldingPeriod() time.Duration {
	return t.ExitTime.Sub(t.EntryTime)
}

// HoldingDays returns the holding period in fractional days
func (t Trade) HoldingDays() float64 {
	return t.HoldingPeriod().Seconds() / (24 * 3600)
}
