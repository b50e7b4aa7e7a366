// Package main provides the entry point for the tradescore CLI tool.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/tradescore/internal/analytics"
	"github.com/yourusername/tradescore/internal/config"
	"github.com/yourusername/tradescore/internal/database"
	"github.com/yourusername/tradescore/internal/health"
	"github.com/yourusername/tradescore/internal/logger"
	"github.com/yourusername/tradescore/internal/metrics"
	"github.com/yourusername/tradescore/internal/models"
	"github.com/yourusername/tradescore/internal/repository"
	"github.com/yourusername/tradescore/internal/scheduler"
	"github.com/yourusername/tradescore/internal/tracing"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	appLogger  *logrus.Logger
	auditLog   *logger.AuditLogger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories

	holdingPeriodsPath string
	tradeDates         []string
	tradeSample        int
	tradeSeed          int64
	tradeOutput        string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	scoreCmd.Flags().StringVar(&holdingPeriodsPath, "holding-periods", "", "Write per-trade holding periods (fractional days) to this file")

	tradesCmd.Flags().StringSliceVar(&tradeDates, "dates", nil, "Restrict to these trading dates (YYYY-MM-DD)")
	tradesCmd.Flags().IntVar(&tradeSample, "sample", 0, "Randomly sample this many trades (0 = all)")
	tradesCmd.Flags().Int64Var(&tradeSeed, "seed", 42, "Random seed for --sample")
	tradesCmd.Flags().StringVarP(&tradeOutput, "output", "o", "", "Write trade CSV to this file instead of stdout")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(tradesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "tradescore",
	Short: "Trade reconstruction and performance metrics",
	Long:  `Reconstructs completed trades from the fill ledger and computes return, risk, drawdown, trade and benchmark metrics over the daily account history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if err := loadConfigWithSecrets(); err != nil {
			return err
		}
		return setupDependencies(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the full metrics report",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runScore(cmd.Context(), "cli")
		return err
	},
}

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "Export reconstructed trades as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrades(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run scheduled analysis with health and metrics endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tradescore %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfigWithSecrets() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func setupDependencies(ctx context.Context) error {
	appLogger = logger.NewLogger(cfg.App.LogLevel)
	auditLog = logger.NewAuditLogger(appLogger)

	if err := tracing.Initialize(tracing.Config{
		ServiceName:  cfg.App.Name,
		Enabled:      cfg.Tracing.Enabled,
		SamplingRate: cfg.Tracing.SamplingRate,
		DaemonAddr:   cfg.Tracing.DaemonAddr,
	}, appLogger); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}
	return nil
}

func loadInputs(ctx context.Context) ([]models.DailyAccountRecord, []models.Fill, error) {
	stageCtx, stage := tracing.StartStage(ctx, "load-inputs")
	daily, err := repos.Account.LoadDaily(stageCtx)
	if err != nil {
		tracing.AddError(stageCtx, err)
		stage.Close(err)
		return nil, nil, fmt.Errorf("failed to load account history: %w", err)
	}
	fills, err := repos.Fill.LoadAll(stageCtx)
	stage.Close(err)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load fill ledger: %w", err)
	}
	metrics.AccountDaysLoadedTotal.Add(float64(len(daily)))
	metrics.FillsLoadedTotal.Add(float64(len(fills)))
	return daily, fills, nil
}

func runScore(ctx context.Context, triggeredBy string) (string, error) {
	ctx, segment := tracing.StartRun(ctx, "tradescore-run")
	defer segment.Close(nil)

	daily, fills, err := loadInputs(ctx)
	if err != nil {
		auditLog.LogRunFailed(triggeredBy, err)
		return "", err
	}
	auditLog.LogRunStarted(triggeredBy, len(daily), len(fills))

	analyzer := analytics.NewAnalyzer(analytics.AnalyzerConfig{
		RiskFree:      analytics.RiskFreeSchedule(cfg.Analytics.RiskFree),
		Benchmark:     benchmarkFromConfig(cfg.Analytics.Benchmark),
		PairingPolicy: analytics.PairingPolicy(cfg.Analytics.PairingPolicy),
	}, appLogger)

	started := time.Now()
	analyzeCtx, stage := tracing.StartStage(ctx, "analyze")
	report, err := analyzer.Run(daily, fills)
	stage.Close(err)
	if err != nil {
		tracing.AddError(analyzeCtx, err)
		auditLog.LogRunFailed(triggeredBy, err)
		return "", fmt.Errorf("analysis failed: %w", err)
	}
	duration := time.Since(started)
	tracing.AddRunAnnotation(ctx, "run_id", report.RunID.String())

	if report.Diagnostics.ExcludedAccountRows > 0 {
		auditLog.LogDataQualityIssue(report.RunID.String(), "excluded_account_rows", report.Diagnostics.ExcludedAccountRows)
	}
	if report.Diagnostics.InvalidFills > 0 {
		auditLog.LogDataQualityIssue(report.RunID.String(), "invalid_fills", report.Diagnostics.InvalidFills)
	}

	metrics.AnalysisDuration.Observe(duration.Seconds())
	metrics.TradesReconstructedTotal.Add(float64(report.Trades.CompletedTrades))
	metrics.UnmatchedSellsTotal.Add(float64(report.Diagnostics.UnmatchedSells))
	metrics.UndefinedMetrics.Set(float64(report.UndefinedCount()))

	if err := writeReports(ctx, report, fills); err != nil {
		auditLog.LogRunFailed(triggeredBy, err)
		return "", err
	}
	metrics.ReportsGeneratedTotal.Inc()
	auditLog.LogRunCompleted(report.RunID.String(), report.Trades.CompletedTrades,
		report.Diagnostics.UnmatchedSells, report.UndefinedCount(), duration)
	return report.RunID.String(), nil
}

func writeReports(ctx context.Context, report *analytics.MetricsReport, fills []models.Fill) error {
	runLogger := logger.NewRunLogger(appLogger, report.RunID.String())
	for _, format := range cfg.Report.Formats {
		switch format {
		case "console":
			fmt.Print(analytics.GenerateConsoleReport(report))
		case "csv":
			path := filepath.Join(cfg.Report.OutputDir, "metrics.csv")
			if err := analytics.GenerateCSVExport(report, path); err != nil {
				return fmt.Errorf("failed to write CSV report: %w", err)
			}
			runLogger.WithField("path", path).Info("Wrote CSV report")
		case "json":
			path := filepath.Join(cfg.Report.OutputDir, "metrics.json")
			if err := analytics.GenerateJSONExport(report, path); err != nil {
				return fmt.Errorf("failed to write JSON report: %w", err)
			}
			runLogger.WithField("path", path).Info("Wrote JSON report")
		}
	}

	if holdingPeriodsPath != "" {
		result := analytics.NewReconstructor(analytics.PairingPolicy(cfg.Analytics.PairingPolicy)).Reconstruct(fills)
		if err := analytics.WriteHoldingPeriods(result.Trades, holdingPeriodsPath); err != nil {
			return fmt.Errorf("failed to write holding periods: %w", err)
		}
		runLogger.WithField("path", holdingPeriodsPath).Info("Wrote holding periods")
	}

	if cfg.Report.SaveToDB {
		if err := repos.Report.Save(ctx, report); err != nil {
			return fmt.Errorf("failed to persist report: %w", err)
		}
		auditLog.LogReportPersisted(report.RunID.String(), report.GeneratedAt)
	}
	return nil
}

func runTrades(ctx context.Context) error {
	_, fills, err := loadInputs(ctx)
	if err != nil {
		return err
	}
	if len(tradeDates) > 0 {
		fills = filterFillsByDate(fills, tradeDates)
	}

	result := analytics.NewReconstructor(analytics.PairingPolicy(cfg.Analytics.PairingPolicy)).Reconstruct(fills)
	metrics.TradesReconstructedTotal.Add(float64(len(result.Trades)))
	metrics.UnmatchedSellsTotal.Add(float64(result.UnmatchedSells))

	trades := result.Trades
	if tradeSample > 0 && tradeSample < len(trades) {
		trades = sampleTrades(trades, tradeSample, tradeSeed)
	}

	csv := analytics.TradesToCSV(trades)
	if tradeOutput == "" {
		fmt.Print(csv)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(tradeOutput), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tradeOutput, []byte(csv), 0o644); err != nil {
		return fmt.Errorf("failed to write trade CSV: %w", err)
	}
	appLogger.WithFields(logrus.Fields{"path": tradeOutput, "trades": len(trades)}).Info("Wrote trade CSV")
	return nil
}

func runServe(ctx context.Context) error {
	if cfg.Scheduler.Cron == "" {
		return fmt.Errorf("scheduler.cron must be set for serve mode")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = metrics.Handler()
	}
	healthSrv := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        cfg.Scheduler.HealthPort,
		Metrics:     metricsHandler,
		Logger:      appLogger,
		DB:          db,
	})
	if err := healthSrv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	sched := scheduler.NewScheduler(func(runCtx context.Context) error {
		runID, err := runScore(runCtx, "scheduler")
		if err != nil {
			return err
		}
		healthSrv.RecordRun(runID, time.Now())
		return nil
	}, appLogger)
	if err := sched.ScheduleAnalysis(cfg.Scheduler.Cron); err != nil {
		return fmt.Errorf("failed to schedule analysis: %w", err)
	}
	if err := sched.Start(); err != nil {
		return err
	}
	healthSrv.SetReady(true)
	appLogger.WithField("cron", cfg.Scheduler.Cron).Info("Serve mode started")

	<-ctx.Done()
	healthSrv.SetReady(false)
	if err := sched.Stop(); err != nil {
		return err
	}
	return healthSrv.Shutdown()
}

func benchmarkFromConfig(months []config.BenchmarkMonthConfig) []analytics.BenchmarkMonthlyReturn {
	benchmark := make([]analytics.BenchmarkMonthlyReturn, len(months))
	for i, m := range months {
		benchmark[i] = analytics.BenchmarkMonthlyReturn{Month: m.Month, Return: m.Return}
	}
	return benchmark
}

func filterFillsByDate(fills []models.Fill, dates []string) []models.Fill {
	wanted := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		wanted[strings.TrimSpace(d)] = struct{}{}
	}
	filtered := make([]models.Fill, 0, len(fills))
	for _, f := range fills {
		if !f.HasValidDate() {
			continue
		}
		if _, ok := wanted[f.Date.Format("2006-01-02")]; ok {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// sampleTrades draws n trades without replacement, keeping the global
// (date, instrument, entry time) order of the survivors.
func sampleTrades(trades []models.Trade, n int, seed int64) []models.Trade {
	rng := rand.New(rand.NewSource(seed))
	picked := rng.Perm(len(trades))[:n]
	sort.Ints(picked)
	sampled := make([]models.Trade, 0, n)
	for _, idx := range picked {
		sampled = append(sampled, trades[idx])
	}
	return sampled
}
