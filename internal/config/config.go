// Package config provides configuration management for tradescore.
package config

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Analytics AnalyticsConfig `mapstructure:"analytics" validate:"required"`
	Report    ReportConfig    `mapstructure:"report" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password" validate:"required"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// AnalyticsConfig carries the policy inputs of the metric suite: the
// month-keyed risk-free-rate schedule and the benchmark monthly series.
// Both are explicit configuration passed into the calculators, never
// module-level state.
type AnalyticsConfig struct {
	RiskFree      map[string]float64     `mapstructure:"risk_free" validate:"required,min=1"`
	Benchmark     []BenchmarkMonthConfig `mapstructure:"benchmark" validate:"required,min=1,dive"`
	PairingPolicy string                 `mapstructure:"pairing_policy" validate:"omitempty,oneof=fifo lifo"`
}

// BenchmarkMonthConfig is one benchmark month in the configuration
type BenchmarkMonthConfig struct {
	Month  string  `mapstructure:"month" validate:"required,monthkey"`
	Return float64 `mapstructure:"return"`
}

// ReportConfig controls where and how reports are written
type ReportConfig struct {
	OutputDir string   `mapstructure:"output_dir" validate:"required"`
	Formats   []string `mapstructure:"formats" validate:"required,min=1,dive,oneof=console json csv"`
	SaveToDB  bool     `mapstructure:"save_to_db"`
}

// MetricsConfig controls the optional Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// SchedulerConfig controls the serve mode's periodic analysis runs
type SchedulerConfig struct {
	Cron       string `mapstructure:"cron" validate:"omitempty"`
	HealthPort string `mapstructure:"health_port"`
}

// TracingConfig contains the AWS X-Ray settings
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	SamplingRate float64 `mapstructure:"sampling_rate" validate:"omitempty,min=0,max=1"`
	DaemonAddr   string  `mapstructure:"daemon_addr"`
}
