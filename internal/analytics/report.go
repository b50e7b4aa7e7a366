package analytics

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

// Diagnostics records the data-quality gaps encountered while building
// the report, so undefined metrics are traceable to their cause.
type Diagnostics struct {
	AccountDays            int      `json:"account_days"`
	ExcludedAccountRows    int      `json:"excluded_account_rows"`
	InvalidFills           int      `json:"invalid_fills"`
	UnmatchedSells         int      `json:"unmatched_sells"`
	OpenBuysDropped        int      `json:"open_buys_dropped"`
	MissingRiskFreeMonths  []string `json:"missing_risk_free_months,omitempty"`
	ExcessSampleSize       int      `json:"excess_sample_size"`
	BenchmarkMonthsJoined  int      `json:"benchmark_months_joined"`
}

// MetricsReport is the assembled, read-only aggregate of every metric.
// It is produced once per run; NaN fields mark metrics that could not
// be computed from the available data and render as null in JSON.
type MetricsReport struct {
	RunID       uuid.UUID `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`

	CumulativeReturn float64 `json:"cumulative_return"`
	CAGR             float64 `json:"cagr"`

	Risk      RiskMetrics         `json:"risk"`
	Drawdown  DrawdownAnalysis    `json:"-"`
	Ratios    PerformanceRatios   `json:"ratios"`
	Trades    TradeStatistics     `json:"trades"`
	Benchmark BenchmarkComparison `json:"benchmark"`

	MaxDrawdown     float64   `json:"max_drawdown"`
	MaxDrawdownDate time.Time `json:"max_drawdown_date"`
	RecoveryDays    *int      `json:"recovery_days"`
	MaxDurationDays int       `json:"max_duration_days"`

	Diagnostics Diagnostics `json:"diagnostics"`
}

// UndefinedCount returns how many scalar metrics are undefined markers.
func (r MetricsReport) UndefinedCount() int {
	count := 0
	for _, v := range r.scalars() {
		if math.IsNaN(v) {
			count++
		}
	}
	if r.RecoveryDays == nil {
		count++
	}
	return count
}

func (r MetricsReport) scalars() []float64 {
	return []float64{
		r.CumulativeReturn, r.CAGR,
		r.Risk.DailyVolatility, r.Risk.AnnualVolatility, r.Risk.ValueAtRisk95, r.Risk.ConditionalVaR95,
		r.MaxDrawdown,
		r.Ratios.Sharpe, r.Ratios.Sortino, r.Ratios.Calmar, r.Ratios.RecoveryFactor, r.Ratios.UlcerIndex,
		r.Trades.WinRate, r.Trades.ProfitFactor, r.Trades.AverageGain, r.Trades.AverageLoss,
		r.Trades.Expectancy, r.Trades.AvgHoldingDays, r.Trades.FeeRatio,
		r.Benchmark.Beta, r.Benchmark.Alpha, r.Benchmark.TrackingErrorAnnual,
	}
}

// MarshalJSON encodes the report with NaN metrics as explicit nulls.
// encoding/json refuses NaN, and zero would misstate an undefined
// metric as computed.
func (r MetricsReport) MarshalJSON() ([]byte, error) {
	type jsonRatios struct {
		Sharpe           *float64 `json:"sharpe"`
		Sortino          *float64 `json:"sortino"`
		Calmar           *float64 `json:"calmar"`
		RecoveryFactor   *float64 `json:"recovery_factor"`
		UlcerIndex       *float64 `json:"ulcer_index"`
		ExcessSampleSize int      `json:"excess_sample_size"`
		MissingMonths    []string `json:"missing_months,omitempty"`
	}
	type jsonRisk struct {
		DailyVolatility  *float64 `json:"daily_volatility"`
		AnnualVolatility *float64 `json:"annual_volatility"`
		ValueAtRisk95    *float64 `json:"var_95"`
		ConditionalVaR95 *float64 `json:"cvar_95"`
	}
	type jsonTrades struct {
		WinRate         *float64 `json:"win_rate"`
		GrossProfit     float64  `json:"gross_profit"`
		GrossLoss       float64  `json:"gross_loss"`
		ProfitFactor    *float64 `json:"profit_factor"`
		AverageGain     *float64 `json:"average_gain"`
		AverageLoss     *float64 `json:"average_loss"`
		Expectancy      *float64 `json:"expectancy"`
		FillCount       int      `json:"fill_count"`
		CompletedTrades int      `json:"completed_trades"`
		AvgHoldingDays  *float64 `json:"avg_holding_days"`
		TotalFees       float64  `json:"total_fees"`
		FeeRatio        *float64 `json:"fee_ratio"`
	}
	type jsonBenchmark struct {
		Beta                 *float64 `json:"beta"`
		Alpha                *float64 `json:"alpha"`
		TrackingErrorMonthly *float64 `json:"tracking_error_monthly"`
		TrackingErrorAnnual  *float64 `json:"tracking_error_annual"`
		MonthsJoined         int      `json:"months_joined"`
	}
	type jsonReport struct {
		RunID            uuid.UUID     `json:"run_id"`
		GeneratedAt      time.Time     `json:"generated_at"`
		StartDate        time.Time     `json:"start_date"`
		EndDate          time.Time     `json:"end_date"`
		CumulativeReturn *float64      `json:"cumulative_return"`
		CAGR             *float64      `json:"cagr"`
		Risk             jsonRisk      `json:"risk"`
		Ratios           jsonRatios    `json:"ratios"`
		Trades           jsonTrades    `json:"trades"`
		Benchmark        jsonBenchmark `json:"benchmark"`
		MaxDrawdown      *float64      `json:"max_drawdown"`
		MaxDrawdownDate  time.Time     `json:"max_drawdown_date"`
		RecoveryDays     *int          `json:"recovery_days"`
		MaxDurationDays  int           `json:"max_duration_days"`
		Diagnostics      Diagnostics   `json:"diagnostics"`
	}

	out := jsonReport{
		RunID:            r.RunID,
		GeneratedAt:      r.GeneratedAt,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		CumulativeReturn: nullable(r.CumulativeReturn),
		CAGR:             nullable(r.CAGR),
		Risk: jsonRisk{
			DailyVolatility:  nullable(r.Risk.DailyVolatility),
			AnnualVolatility: nullable(r.Risk.AnnualVolatility),
			ValueAtRisk95:    nullable(r.Risk.ValueAtRisk95),
			ConditionalVaR95: nullable(r.Risk.ConditionalVaR95),
		},
		Ratios: jsonRatios{
			Sharpe:           nullable(r.Ratios.Sharpe),
			Sortino:          nullable(r.Ratios.Sortino),
			Calmar:           nullable(r.Ratios.Calmar),
			RecoveryFactor:   nullable(r.Ratios.RecoveryFactor),
			UlcerIndex:       nullable(r.Ratios.UlcerIndex),
			ExcessSampleSize: r.Ratios.ExcessSampleSize,
			MissingMonths:    r.Ratios.MissingMonths,
		},
		Trades: jsonTrades{
			WinRate:         nullable(r.Trades.WinRate),
			GrossProfit:     r.Trades.GrossProfit,
			GrossLoss:       r.Trades.GrossLoss,
			ProfitFactor:    nullable(r.Trades.ProfitFactor),
			AverageGain:     nullable(r.Trades.AverageGain),
			AverageLoss:     nullable(r.Trades.AverageLoss),
			Expectancy:      nullable(r.Trades.Expectancy),
			FillCount:       r.Trades.FillCount,
			CompletedTrades: r.Trades.CompletedTrades,
			AvgHoldingDays:  nullable(r.Trades.AvgHoldingDays),
			TotalFees:       r.Trades.TotalFees,
			FeeRatio:        nullable(r.Trades.FeeRatio),
		},
		Benchmark: jsonBenchmark{
			Beta:                 nullable(r.Benchmark.Beta),
			Alpha:                nullable(r.Benchmark.Alpha),
			TrackingErrorMonthly: nullable(r.Benchmark.TrackingErrorMonthly),
			TrackingErrorAnnual:  nullable(r.Benchmark.TrackingErrorAnnual),
			MonthsJoined:         r.Benchmark.MonthsJoined,
		},
		MaxDrawdown:     nullable(r.MaxDrawdown),
		MaxDrawdownDate: r.MaxDrawdownDate,
		RecoveryDays:    r.RecoveryDays,
		MaxDurationDays: r.MaxDurationDays,
		Diagnostics:     r.Diagnostics,
	}
	return json.Marshal(out)
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
