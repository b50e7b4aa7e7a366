package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/tradescore/internal/models"
)

// AnalyzerConfig carries the externally supplied policy inputs. Both
// schedules are passed in explicitly; the analyzer keeps no globals.
type AnalyzerConfig struct {
	RiskFree      RiskFreeSchedule
	Benchmark     []BenchmarkMonthlyReturn
	PairingPolicy PairingPolicy
}

// Analyzer runs the full reconstruction-and-metrics pipeline over
// fully materialized input sequences.
type Analyzer struct {
	cfg    AnalyzerConfig
	logger *logrus.Entry
}

// NewAnalyzer creates a configured analyzer
func NewAnalyzer(cfg AnalyzerConfig, logger *logrus.Logger) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		logger: logger.WithField("component", "analyzer"),
	}
}

// Run builds the metrics report from the daily account records and the
// fill ledger. It is a deterministic, single-pass batch computation:
// inputs are immutable and every derived value is computed from them.
func (a *Analyzer) Run(daily []models.DailyAccountRecord, fills []models.Fill) (*MetricsReport, error) {
	if len(daily) == 0 {
		return nil, models.ErrNoAccountHistory
	}
	if len(fills) == 0 {
		return nil, models.ErrEmptyLedger
	}

	sorted := make([]models.DailyAccountRecord, len(daily))
	copy(sorted, daily)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	series := NewReturnSeries(sorted)
	if series.Excluded > 0 {
		a.logger.WithField("rows", series.Excluded).Warn("Excluded account rows with unparseable dates")
	}

	reconstruction := NewReconstructor(a.cfg.PairingPolicy).Reconstruct(fills)
	a.logger.WithFields(logrus.Fields{
		"fills":           len(fills),
		"trades":          len(reconstruction.Trades),
		"unmatched_sells": reconstruction.UnmatchedSells,
		"open_buys":       reconstruction.OpenBuys,
	}).Info("Reconstructed completed trades")

	drawdowns := AnalyzeDrawdowns(series)
	ratios := CalculatePerformanceRatios(series, drawdowns, a.cfg.RiskFree)
	if len(ratios.MissingMonths) > 0 {
		a.logger.WithFields(logrus.Fields{
			"months":       ratios.MissingMonths,
			"sample_size":  ratios.ExcessSampleSize,
			"account_days": series.Len(),
		}).Warn("Risk-free schedule gaps reduced the excess-return sample")
	}

	report := &MetricsReport{
		RunID:            uuid.New(),
		GeneratedAt:      time.Now().UTC(),
		CumulativeReturn: series.CumulativeReturn(),
		CAGR:             series.CAGR(),
		Risk:             CalculateRiskMetrics(series),
		Drawdown:         drawdowns,
		Ratios:           ratios,
		Trades:           CalculateTradeStatistics(fills, reconstruction.Trades, sorted),
		Benchmark:        CompareToBenchmark(series, a.cfg.Benchmark),
		MaxDrawdown:      drawdowns.MaxDrawdown,
		MaxDrawdownDate:  drawdowns.MaxDrawdownDate,
		RecoveryDays:     drawdowns.RecoveryDays,
		MaxDurationDays:  drawdowns.MaxDurationDays,
	}
	if series.Len() > 0 {
		report.StartDate = series.Dates[0]
		report.EndDate = series.Dates[len(series.Dates)-1]
	}
	report.Diagnostics = Diagnostics{
		AccountDays:           series.Len(),
		ExcludedAccountRows:   series.Excluded,
		InvalidFills:          reconstruction.InvalidFills,
		UnmatchedSells:        reconstruction.UnmatchedSells,
		OpenBuysDropped:       reconstruction.OpenBuys,
		MissingRiskFreeMonths: ratios.MissingMonths,
		ExcessSampleSize:      ratios.ExcessSampleSize,
		BenchmarkMonthsJoined: report.Benchmark.MonthsJoined,
	}

	if undefined := report.UndefinedCount(); undefined > 0 {
		a.logger.WithField("count", undefined).Info("Report contains undefined metrics")
	}
	if math.IsNaN(report.CAGR) {
		a.logger.Warn("CAGR undefined: series spans fewer than two distinct dates")
	}
	return report, nil
}
