// Package metrics provides the centralized Prometheus registry for the
// analytics pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	FillsLoadedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tradescore",
		Name:      "fills_loaded_total",
		Help:      "Total number of fill rows loaded from the ledger",
	})
	AccountDaysLoadedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tradescore",
		Name:      "account_days_loaded_total",
		Help:      "Total number of daily account rows loaded",
	})
	TradesReconstructedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tradescore",
		Name:      "trades_reconstructed_total",
		Help:      "Total number of completed trades reconstructed",
	})
	UnmatchedSellsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tradescore",
		Name:      "unmatched_sells_total",
		Help:      "Total number of sell fills dropped for lack of an open buy",
	})
	ReportsGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tradescore",
		Name:      "reports_generated_total",
		Help:      "Total number of metrics reports generated",
	})
)

// Gauge metrics
var (
	UndefinedMetrics = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tradescore",
		Name:      "undefined_metrics",
		Help:      "Number of undefined metrics in the last report",
	})
)

// Histogram metrics
var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tradescore",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of full analysis runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(FillsLoadedTotal)
		registry.MustRegister(AccountDaysLoadedTotal)
		registry.MustRegister(TradesReconstructedTotal)
		registry.MustRegister(UnmatchedSellsTotal)
		registry.MustRegister(ReportsGeneratedTotal)
		registry.MustRegister(UndefinedMetrics)
		registry.MustRegister(AnalysisDuration)
	})
	return registry
}

// Handler returns an HTTP handler exposing the registry
func Handler() http.Handler {
	return promhttp.HandlerFor(InitRegistry(), promhttp.HandlerOpts{})
}
