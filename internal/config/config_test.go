package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validConfigPath     = "testdata/valid_config.yaml"
	expansionConfigPath = "testdata/expansion_config.yaml"
)

func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "tradescore", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "fifo", cfg.Analytics.PairingPolicy)
	assert.InDelta(t, 0.035, cfg.Analytics.RiskFree["2023-09"], 1e-12)
	require.Len(t, cfg.Analytics.Benchmark, 3)
	assert.Equal(t, "2023-10", cfg.Analytics.Benchmark[1].Month)
	assert.InDelta(t, -0.0056, cfg.Analytics.Benchmark[1].Return, 1e-12)
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load("testdata/nonexistent_config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadConfigExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "expanded_secret_value")
	cfg, err := Load(expansionConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "expanded_secret_value", cfg.Database.Password)
}

func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults("testdata/nonexistent_config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "tradescore", cfg.App.Name)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "fifo", cfg.Analytics.PairingPolicy)
	assert.Equal(t, []string{"console"}, cfg.Report.Formats)
	assert.Equal(t, "0 6 * * *", cfg.Scheduler.Cron)
	assert.Equal(t, "8080", cfg.Scheduler.HealthPort)
	assert.False(t, cfg.Tracing.Enabled)
	assert.InDelta(t, 0.05, cfg.Tracing.SamplingRate, 1e-12)
}

func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))
}

func TestValidateBadEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	cfg.App.Environment = "invalid"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment")
}

func TestValidateBadMonthKey(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	cfg.Analytics.Benchmark[0].Month = "2023/09"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monthkey")
}

func TestValidateBadRiskFreeKey(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	cfg.Analytics.RiskFree["202309"] = 0.03
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "risk_free")
}

func TestValidateMetricsAddressRequired(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	cfg.Metrics.Enabled = true
	cfg.Metrics.Address = ""
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics.address")
}

func TestSecretsOverlay(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)

	overlaySecretsOnConfig(cfg, &SecretsOverlay{DatabasePassword: "from-aws"})
	assert.Equal(t, "from-aws", cfg.Database.Password)
	assert.Equal(t, "tradescore", cfg.Database.User)

	overlaySecretsOnConfig(cfg, &SecretsOverlay{DatabaseUser: "svc"})
	assert.Equal(t, "svc", cfg.Database.User)
}
