package analytics

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/yourusername/tradescore/internal/models"
)

// TradeStatistics summarizes the fill ledger and the reconstructed
// trades. FillCount counts raw fills, not completed trades.
type TradeStatistics struct {
	WinRate           float64 `json:"win_rate"`
	GrossProfit       float64 `json:"gross_profit"`
	GrossLoss         float64 `json:"gross_loss"`
	ProfitFactor      float64 `json:"profit_factor"`
	AverageGain       float64 `json:"average_gain"`
	AverageLoss       float64 `json:"average_loss"`
	Expectancy        float64 `json:"expectancy"`
	FillCount         int     `json:"fill_count"`
	CompletedTrades   int     `json:"completed_trades"`
	AvgHoldingDays    float64 `json:"avg_holding_days"`
	TotalFees         float64 `json:"total_fees"`
	FeeRatio          float64 `json:"fee_ratio"`
	SellFillCount     int     `json:"sell_fill_count"`
	WinningSellFills  int     `json:"winning_sell_fills"`
}

// CalculateTradeStatistics computes win rate, profit factor, expectancy
// and holding-period stats from the raw fills, the completed trades and
// the daily account series (for fee and turnover aggregation).
func CalculateTradeStatistics(fills []models.Fill, trades []models.Trade, daily []models.DailyAccountRecord) TradeStatistics {
	stats := TradeStatistics{
		FillCount:       len(fills),
		CompletedTrades: len(trades),
	}

	// Win rate counts sell legs only: buy legs always lose by the fee.
	gains := make([]float64, 0)
	losses := make([]float64, 0)
	for _, f := range fills {
		if f.Side == models.FillSideSell {
			stats.SellFillCount++
			if f.Profit != nil && *f.Profit > 0 {
				stats.WinningSellFills++
			}
		}
		if f.Profit == nil {
			continue
		}
		switch {
		case *f.Profit > 0:
			gains = append(gains, *f.Profit)
		case *f.Profit < 0:
			losses = append(losses, -*f.Profit)
		}
	}

	stats.WinRate = math.NaN()
	if stats.SellFillCount > 0 {
		stats.WinRate = float64(stats.WinningSellFills) / float64(stats.SellFillCount)
	}

	for _, g := range gains {
		stats.GrossProfit += g
	}
	for _, l := range losses {
		stats.GrossLoss += l
	}
	stats.ProfitFactor = math.NaN()
	if stats.GrossLoss > 0 {
		stats.ProfitFactor = stats.GrossProfit / stats.GrossLoss
	}
	stats.AverageGain = mean(gains)
	stats.AverageLoss = mean(losses)

	stats.Expectancy = math.NaN()
	if !math.IsNaN(stats.WinRate) {
		stats.Expectancy = stats.WinRate*stats.AverageGain - (1-stats.WinRate)*stats.AverageLoss
	}

	holding := make([]float64, 0, len(trades))
	for _, t := range trades {
		holding = append(holding, t.HoldingDays())
	}
	stats.AvgHoldingDays = mean(holding)

	// Fee ratio over the daily account series, aggregated exactly.
	totalFees := decimal.Zero
	totalTurnover := decimal.Zero
	for _, rec := range daily {
		totalFees = totalFees.Add(rec.Fee)
		totalTurnover = totalTurnover.Add(rec.Turnover)
	}
	stats.TotalFees = totalFees.InexactFloat64()
	stats.FeeRatio = math.NaN()
	if !totalTurnover.IsZero() {
		stats.FeeRatio = totalFees.Div(totalTurnover).InexactFloat64()
	}
	return stats
}

// HoldingPeriods returns each completed trade's holding period in
// fractional days, in trade order.
func HoldingPeriods(trades []models.Trade) []float64 {
	periods := make([]float64, len(trades))
	for i, t := range trades {
		periods[i] = t.HoldingDays()
	}
	return periods
}
