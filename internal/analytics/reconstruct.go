package analytics

import (
	"sort"

	"github.com/yourusername/tradescore/internal/models"
)

// PairingPolicy selects which open buy leg a sell fill closes.
type PairingPolicy string

const (
	// PairOldestFirst matches each sell against the longest-held open
	// buy. This is the default: it approximates "exit the oldest lot".
	PairOldestFirst PairingPolicy = "fifo"
	// PairNewestFirst matches each sell against the most recent open buy.
	PairNewestFirst PairingPolicy = "lifo"
)

// Reconstructor pairs buy and sell fills into completed trades.
type Reconstructor struct {
	policy PairingPolicy
}

// ReconstructionResult is the completed-trade set plus the counts of
// fills that could not be paired.
type ReconstructionResult struct {
	Trades         []models.Trade
	UnmatchedSells int // sells with no open buy on their instrument-day, dropped
	OpenBuys       int // buys left open at end of day, dropped
	InvalidFills   int // fills excluded for unparseable dates or times
}

// NewReconstructor creates a reconstructor with the given pairing
// policy. An empty policy defaults to oldest-first.
func NewReconstructor(policy PairingPolicy) *Reconstructor {
	if policy == "" {
		policy = PairOldestFirst
	}
	return &Reconstructor{policy: policy}
}

// Reconstruct groups fills by (instrument, day), pairs sells against
// pending buys, and returns the completed trades sorted by
// (date, instrument, entry time). It is a pure function of the fill
// sequence: unmatched legs are counted and dropped, never errors.
func (r *Reconstructor) Reconstruct(fills []models.Fill) ReconstructionResult {
	type groupKey struct {
		day        string
		instrument string
	}

	result := ReconstructionResult{}
	valid := make([]models.Fill, 0, len(fills))
	for _, f := range fills {
		if !f.HasValidDate() || f.Timestamp().IsZero() {
			result.InvalidFills++
			continue
		}
		valid = append(valid, f)
	}

	// Time order within each group is what FIFO pairing is defined over.
	sort.SliceStable(valid, func(i, j int) bool {
		if !valid[i].Date.Equal(valid[j].Date) {
			return valid[i].Date.Before(valid[j].Date)
		}
		if valid[i].Instrument != valid[j].Instrument {
			return valid[i].Instrument < valid[j].Instrument
		}
		return valid[i].Time < valid[j].Time
	})

	queues := make(map[groupKey][]models.Fill)
	order := make([]groupKey, 0)
	for _, f := range valid {
		key := groupKey{day: f.Date.Format("2006-01-02"), instrument: f.Instrument}
		if _, seen := queues[key]; !seen {
			order = append(order, key)
			queues[key] = nil
		}
		switch f.Side {
		case models.FillSideBuy:
			queues[key] = append(queues[key], f)
		case models.FillSideSell:
			queue := queues[key]
			if len(queue) == 0 {
				// No entry in this day's ledger: not reconstructible.
				result.UnmatchedSells++
				continue
			}
			var buy models.Fill
			if r.policy == PairNewestFirst {
				buy = queue[len(queue)-1]
				queues[key] = queue[:len(queue)-1]
			} else {
				buy = queue[0]
				queues[key] = queue[1:]
			}
			result.Trades = append(result.Trades, pairTrade(buy, f))
		}
	}

	// Buys still queued at end of day are open positions, out of scope.
	for _, key := range order {
		result.OpenBuys += len(queues[key])
	}

	sort.SliceStable(result.Trades, func(i, j int) bool {
		ti, tj := result.Trades[i], result.Trades[j]
		di := ti.EntryTime.Format("2006-01-02")
		dj := tj.EntryTime.Format("2006-01-02")
		if di != dj {
			return di < dj
		}
		if ti.Instrument != tj.Instrument {
			return ti.Instrument < tj.Instrument
		}
		return ti.EntryTime.Before(tj.EntryTime)
	})
	return result
}

func pairTrade(buy, sell models.Fill) models.Trade {
	trade := models.Trade{
		Instrument: buy.Instrument,
		Quantity:   buy.Quantity,
		EntryTime:  buy.Timestamp(),
		EntryPrice: buy.Price,
		ExitTime:   sell.Timestamp(),
		ExitPrice:  sell.Price,
		ExitReason: sell.Strategy,
		EntryFee:   buy.Fee,
	}
	if sell.Profit != nil {
		trade.ExitPnL = *sell.Profit
	}
	if sell.ROI != nil {
		trade.ROI = *sell.ROI
	}
	return trade
}
