package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chtemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chtemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.InDelta(t, 0.15, cfg.Scoring.OnlinePresenceWeight, 0.001)
	assert.InDelta(t, 0.20, cfg.Scoring.SEOOpportunityWeight, 0.001)
	assert.InDelta(t, 0.50, cfg.Scoring.RelevancyWeight, 0.001)
	assert.Equal(t, 20, cfg.Scoring.LowReviewThreshold)
	assert.Equal(t, 10, cfg.Synth.MinCount)
	assert.Equal(t, 15, cfg.Synth.MaxCount)
	assert.InDelta(t, 0.9, cfg.Synth.WebsiteProbability, 0.001)
	assert.Equal(t, 45, cfg.Scan.FetchTimeoutSecs)
	assert.Equal(t, 30, cfg.Outreach.GenerateTimeoutSecs)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.AISource.Model)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Generator.Model)
	assert.Empty(t, cfg.Anthropic.Key, "no key configured means demo mode, not an error")
	assert.Empty(t, cfg.Places.Key)
}

func TestLoadFromYAML(t *testing.T) {
	chtemp(t)

	yaml := `
log:
  level: debug
  format: console
server:
  port: 9090
scoring:
  low_review_threshold: 30
synth:
  min_count: 5
  max_count: 8
anthropic:
  key: sk-ant-test
`
	require.NoError(t, os.WriteFile(filepath.Join(".", "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Scoring.LowReviewThreshold)
	assert.Equal(t, 5, cfg.Synth.MinCount)
	assert.Equal(t, "sk-ant-test", cfg.Anthropic.Key)
	// Defaults still apply for unset values
	assert.InDelta(t, 0.50, cfg.Scoring.RelevancyWeight, 0.001)
	assert.Equal(t, 45, cfg.Scan.FetchTimeoutSecs)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chtemp(t)

	yaml := `
log:
  level: debug
anthropic:
  key: from-file
`
	require.NoError(t, os.WriteFile(filepath.Join(".", "config.yaml"), []byte(yaml), 0644))

	t.Setenv("LEADSCAN_LOG_LEVEL", "warn")
	t.Setenv("LEADSCAN_ANTHROPIC_KEY", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "from-env", cfg.Anthropic.Key)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chtemp(t)

	t.Setenv("LEADSCAN_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadRejectsInvalidScoringWeights(t *testing.T) {
	chtemp(t)

	yaml := `
scoring:
  relevancy_weight: 0.9
`
	require.NoError(t, os.WriteFile(filepath.Join(".", "config.yaml"), []byte(yaml), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weights must sum")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
