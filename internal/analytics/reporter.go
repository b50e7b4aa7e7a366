package analytics

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yourusername/tradescore/internal/models"
)

const undefinedMarker = "n/a"

// GenerateConsoleReport formats the report for terminal output,
// section by section. Undefined metrics print as a marker, never zero.
func GenerateConsoleReport(report *MetricsReport) string {
	var b strings.Builder
	b.WriteString("=== Return Metrics ===\n")
	fmt.Fprintf(&b, "Cumulative Return: %s\n", formatPercent(report.CumulativeReturn))
	fmt.Fprintf(&b, "CAGR: %s\n", formatPercent(report.CAGR))

	b.WriteString("\n=== Risk Metrics ===\n")
	fmt.Fprintf(&b, "Annual Volatility: %s\n", formatPercent(report.Risk.AnnualVolatility))
	fmt.Fprintf(&b, "VaR 95%%: %s\n", formatPercent(report.Risk.ValueAtRisk95))
	fmt.Fprintf(&b, "CVaR 95%%: %s\n", formatPercent(report.Risk.ConditionalVaR95))

	b.WriteString("\n=== Risk-Adjusted Metrics ===\n")
	fmt.Fprintf(&b, "Sharpe Ratio: %s\n", formatRatio(report.Ratios.Sharpe))
	fmt.Fprintf(&b, "Sortino Ratio: %s\n", formatRatio(report.Ratios.Sortino))
	fmt.Fprintf(&b, "Calmar Ratio: %s\n", formatRatio(report.Ratios.Calmar))
	fmt.Fprintf(&b, "Recovery Factor: %s\n", formatRatio(report.Ratios.RecoveryFactor))
	fmt.Fprintf(&b, "Ulcer Index: %s\n", formatFixed(report.Ratios.UlcerIndex, 4))
	if len(report.Ratios.MissingMonths) > 0 {
		fmt.Fprintf(&b, "Note: %d/%d days in excess-return sample (missing risk-free months: %s)\n",
			report.Ratios.ExcessSampleSize, report.Diagnostics.AccountDays,
			strings.Join(report.Ratios.MissingMonths, ", "))
	}

	b.WriteString("\n=== Drawdown Metrics ===\n")
	fmt.Fprintf(&b, "Max Drawdown: %s\n", formatPercent(report.MaxDrawdown))
	if report.RecoveryDays != nil {
		fmt.Fprintf(&b, "Recovery Period: %d days\n", *report.RecoveryDays)
	} else {
		b.WriteString("Recovery Period: not yet recovered\n")
	}
	fmt.Fprintf(&b, "Max Drawdown Duration: %d days\n", report.MaxDurationDays)

	b.WriteString("\n=== Trade Metrics ===\n")
	fmt.Fprintf(&b, "Win Rate: %s\n", formatPercent(report.Trades.WinRate))
	fmt.Fprintf(&b, "Profit Factor: %s\n", formatRatio(report.Trades.ProfitFactor))
	fmt.Fprintf(&b, "Expectancy: %s\n", formatRatio(report.Trades.Expectancy))
	fmt.Fprintf(&b, "Fill Count: %d\n", report.Trades.FillCount)
	fmt.Fprintf(&b, "Completed Trades: %d\n", report.Trades.CompletedTrades)
	fmt.Fprintf(&b, "Average Holding Period: %s\n", formatHoldingPeriod(report.Trades.AvgHoldingDays))

	b.WriteString("\n=== Cost Metrics ===\n")
	fmt.Fprintf(&b, "Total Fees: %s\n", formatFixed(report.Trades.TotalFees, 2))
	fmt.Fprintf(&b, "Fee Ratio: %s\n", formatPercent(report.Trades.FeeRatio))

	b.WriteString("\n=== Benchmark Metrics ===\n")
	fmt.Fprintf(&b, "Beta: %s\n", formatFixed(report.Benchmark.Beta, 3))
	fmt.Fprintf(&b, "Alpha: %s\n", formatPercent(report.Benchmark.Alpha))
	fmt.Fprintf(&b, "Tracking Error (annual): %s\n", formatPercent(report.Benchmark.TrackingErrorAnnual))
	return b.String()
}

// GenerateCSVExport writes the scalar metrics as metric,value rows.
// Undefined metrics export as empty values.
func GenerateCSVExport(report *MetricsReport, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	rows := []struct {
		name  string
		value float64
	}{
		{"cumulative_return", report.CumulativeReturn},
		{"cagr", report.CAGR},
		{"daily_volatility", report.Risk.DailyVolatility},
		{"annual_volatility", report.Risk.AnnualVolatility},
		{"var_95", report.Risk.ValueAtRisk95},
		{"cvar_95", report.Risk.ConditionalVaR95},
		{"max_drawdown", report.MaxDrawdown},
		{"sharpe", report.Ratios.Sharpe},
		{"sortino", report.Ratios.Sortino},
		{"calmar", report.Ratios.Calmar},
		{"recovery_factor", report.Ratios.RecoveryFactor},
		{"ulcer_index", report.Ratios.UlcerIndex},
		{"win_rate", report.Trades.WinRate},
		{"profit_factor", report.Trades.ProfitFactor},
		{"expectancy", report.Trades.Expectancy},
		{"avg_holding_days", report.Trades.AvgHoldingDays},
		{"total_fees", report.Trades.TotalFees},
		{"fee_ratio", report.Trades.FeeRatio},
		{"beta", report.Benchmark.Beta},
		{"alpha", report.Benchmark.Alpha},
		{"tracking_error_annual", report.Benchmark.TrackingErrorAnnual},
	}

	var b strings.Builder
	b.WriteString("metric,value\n")
	for _, row := range rows {
		if math.IsNaN(row.value) {
			fmt.Fprintf(&b, "%s,\n", row.name)
			continue
		}
		fmt.Fprintf(&b, "%s,%s\n", row.name, strconv.FormatFloat(row.value, 'f', 6, 64))
	}
	fmt.Fprintf(&b, "recovery_days,%s\n", formatRecovery(report.RecoveryDays))
	fmt.Fprintf(&b, "max_drawdown_duration_days,%d\n", report.MaxDurationDays)
	return os.WriteFile(outputPath, []byte(b.String()), 0o644)
}

// GenerateJSONExport writes the report as JSON with nulls for
// undefined metrics.
func GenerateJSONExport(report *MetricsReport, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	data, err := report.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}

// TradesToCSV renders the completed-trade set as CSV, in the global
// (date, instrument, entry time) order the reconstructor guarantees.
func TradesToCSV(trades []models.Trade) string {
	var b strings.Builder
	b.WriteString("date,instrument,quantity,entry_time,entry_price,exit_time,exit_price,exit_reason,entry_fee,exit_pnl,roi\n")
	for _, t := range trades {
		fmt.Fprintf(&b, "%s,%s,%d,%s,%s,%s,%s,%s,%s,%s,%s\n",
			t.EntryTime.Format("2006-01-02"),
			t.Instrument,
			t.Quantity,
			t.EntryTime.Format("15:04:05"),
			t.EntryPrice.String(),
			t.ExitTime.Format("15:04:05"),
			t.ExitPrice.String(),
			t.ExitReason,
			t.EntryFee.String(),
			strconv.FormatFloat(t.ExitPnL, 'f', 2, 64),
			strconv.FormatFloat(t.ROI, 'f', 6, 64),
		)
	}
	return b.String()
}

// WriteHoldingPeriods writes one fractional-day holding period per
// line for each completed trade.
func WriteHoldingPeriods(trades []models.Trade, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	var b strings.Builder
	for _, period := range HoldingPeriods(trades) {
		b.WriteString(strconv.FormatFloat(period, 'f', -1, 64))
		b.WriteString("\n")
	}
	return os.WriteFile(outputPath, []byte(b.String()), 0o644)
}

func formatPercent(v float64) string {
	if math.IsNaN(v) {
		return undefinedMarker
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

func formatRatio(v float64) string {
	if math.IsNaN(v) {
		return undefinedMarker
	}
	return fmt.Sprintf("%.2f", v)
}

func formatFixed(v float64, prec int) string {
	if math.IsNaN(v) {
		return undefinedMarker
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func formatRecovery(days *int) string {
	if days == nil {
		return ""
	}
	return strconv.Itoa(*days)
}

// formatHoldingPeriod scales the fractional-day mean down to hours or
// minutes when a day is too coarse a unit.
func formatHoldingPeriod(days float64) string {
	if math.IsNaN(days) {
		return undefinedMarker
	}
	if days >= 1 {
		return fmt.Sprintf("%.1f days", days)
	}
	hours := days * 24
	if hours >= 1 {
		return fmt.Sprintf("%.1f hours", hours)
	}
	return fmt.Sprintf("%.1f minutes", hours*60)
}
