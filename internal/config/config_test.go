package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTempConfig writes content to a temporary YAML file
func writeTempConfig(t *testing.T, content string) string {
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

// TestLoadConfig_Defaults tests loading configuration with default values
func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")

	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify server defaults
	assert.Equal(t, 8085, config.Server.Port)
	assert.Equal(t, 30*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, config.Server.WriteTimeout)

	// Verify Kafka defaults
	assert.False(t, config.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "raw_drops", config.Kafka.DropsTopic)
	assert.Equal(t, "parlay_events", config.Kafka.EventsTopic)
	assert.Equal(t, "parlay-intel", config.Kafka.GroupID)

	// Verify Redis defaults
	assert.Equal(t, "localhost:6379", config.Redis.Addr)
	assert.Equal(t, 0, config.Redis.DB)
	assert.Equal(t, 5*time.Minute, config.Redis.ReportTTL)

	assert.Equal(t, "sqlite", config.Database.Driver)

	// Verify engine defaults
	e := config.Engine
	assert.Equal(t, 86400, e.DropDedupTTLSeconds)
	assert.Equal(t, 3600, e.ParlayGenerationIntervalSeconds)
	assert.Equal(t, 300, e.VerificationCooldownSeconds)
	assert.Equal(t, 10, e.ScoringRecomputeEveryNBets)
	assert.Equal(t, 15, e.OddsFeedTimeoutSeconds)
	assert.Equal(t, 10, e.MaxLegsPerBucket)
	assert.Equal(t, 5, e.MaxParlaysPerStrategySlot)
	assert.Equal(t, 10, e.MinBetsForScoring)
	assert.Equal(t, 0.3, e.TrueProbabilitySlope)
	assert.Equal(t, 12*time.Hour, e.DefaultEventHorizon)
	assert.Equal(t, 20, e.HighEVPoolSize)
	assert.Equal(t, 10*time.Minute, e.ClosingLineWindow)
	assert.Equal(t, 24*time.Hour, e.HealthRecomputeInterval)

	assert.Equal(t, 24*time.Hour, e.DedupTTL())
	assert.Equal(t, time.Hour, e.GenerationInterval())
	assert.Equal(t, 5*time.Minute, e.VerificationCooldown())
	assert.Equal(t, 15*time.Second, e.OddsFeedTimeout())

	// Verify logging defaults
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "json", config.Logging.Format)
}

// TestLoadConfig_WithFile tests loading configuration from file
func TestLoadConfig_WithFile(t *testing.T) {
	path := writeTempConfig(t, `
server:
  port: 9090
  read_timeout: 45s

kafka:
  enabled: true
  brokers:
    - broker1:9092
    - broker2:9092
  drops_topic: test_drops

database:
  driver: postgres
  dsn: postgres://localhost/parlays?sslmode=disable

oddsfeed:
  bookmakers: [betsson, coolbet]

engine:
  drop_dedup_ttl_seconds: 600
  true_probability_slope: 0.25
  strict_bookmakers: true
  correlation_catalog_file: patterns.yaml

logging:
  level: debug
  format: console
`)

	config, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 45*time.Second, config.Server.ReadTimeout)
	assert.True(t, config.Kafka.Enabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "test_drops", config.Kafka.DropsTopic)
	assert.Equal(t, "postgres", config.Database.Driver)
	assert.Equal(t, []string{"betsson", "coolbet"}, config.OddsFeed.Bookmakers)
	assert.Equal(t, 10*time.Minute, config.Engine.DedupTTL())
	assert.Equal(t, 0.25, config.Engine.TrueProbabilitySlope)
	assert.True(t, config.Engine.StrictBookmakers)
	assert.Equal(t, "patterns.yaml", config.Engine.CorrelationCatalogFile)
	assert.Equal(t, "console", config.Logging.Format)

	// untouched sections keep defaults
	assert.Equal(t, "localhost:6379", config.Redis.Addr)
	assert.Equal(t, 30*time.Second, config.Server.WriteTimeout)
}

// TestLoadConfig_InvalidFile tests loading with non-existent file
func TestLoadConfig_InvalidFile(t *testing.T) {
	config, err := LoadConfig("/nonexistent/config.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
}

// TestLoadConfig_MalformedFile tests loading with malformed values
func TestLoadConfig_MalformedFile(t *testing.T) {
	path := writeTempConfig(t, `
server:
  port: invalid_port
  read_timeout: not_a_duration
`)

	config, err := LoadConfig(path)

	assert.Error(t, err)
	assert.Nil(t, config)
}

// TestLoadConfig_UnsupportedDriver tests validation of the database driver
func TestLoadConfig_UnsupportedDriver(t *testing.T) {
	path := writeTempConfig(t, "database:\n  driver: mysql\n")

	config, err := LoadConfig(path)

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "mysql")
}

// TestLoadConfig_EnvironmentVariables tests environment variable overrides
func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("PARLAY_INTEL_SERVER_PORT", "7777")
	t.Setenv("PARLAY_INTEL_REDIS_ADDR", "env-redis:6379")
	t.Setenv("PARLAY_INTEL_ENGINE_MAX_LEGS_PER_BUCKET", "8")

	config, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, 7777, config.Server.Port)
	assert.Equal(t, "env-redis:6379", config.Redis.Addr)
	assert.Equal(t, 8, config.Engine.MaxLegsPerBucket)
}

// TestToEngineConfig tests conversion to parlay engine parameters
func TestToEngineConfig(t *testing.T) {
	e := EngineConfig{
		MaxLegsPerBucket:          12,
		MaxParlaysPerStrategySlot: 3,
		TrueProbabilitySlope:      0.4,
		HighEVPoolSize:            15,
		MinBetsForScoring:         20,
	}

	params := e.ToEngineConfig()
	assert.Equal(t, 12, params.MaxLegsPerBucket)
	assert.Equal(t, 3, params.MaxParlaysPerSlot)
	assert.Equal(t, 0.4, params.TrueProbabilitySlope)
	assert.Equal(t, 15, params.HighEVPoolSize)

	assert.Equal(t, 20, e.ToScorerConfig().MinBets)
}
