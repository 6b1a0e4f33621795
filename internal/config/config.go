package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/cypherlabdev/parlay-intel-service/pkg/bookhealth"
	"github.com/cypherlabdev/parlay-intel-service/pkg/parlay"
)

// Config holds all configuration for parlay-intel-service
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	OddsFeed OddsFeedConfig `mapstructure:"oddsfeed"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled     bool     `mapstructure:"enabled"`
	Brokers     []string `mapstructure:"brokers"`
	DropsTopic  string   `mapstructure:"drops_topic"`  // raw drops consumed
	EventsTopic string   `mapstructure:"events_topic"` // engine events produced
	GroupID     string   `mapstructure:"group_id"`
}

// RedisConfig holds Redis configuration (dedup set and report cache)
type RedisConfig struct {
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	ReportTTL time.Duration `mapstructure:"report_ttl"`
}

// DatabaseConfig selects the SQL store
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	DSN    string `mapstructure:"dsn"`
}

// OddsFeedConfig holds the live odds feed client configuration
type OddsFeedConfig struct {
	BaseURL           string   `mapstructure:"base_url"`
	APIKey            string   `mapstructure:"api_key"`
	Regions           string   `mapstructure:"regions"`
	Bookmakers        []string `mapstructure:"bookmakers"`
	RequestsPerSecond float64  `mapstructure:"requests_per_second"`
	MaxRetries        int      `mapstructure:"max_retries"`
}

// EngineConfig holds the analytical core options
type EngineConfig struct {
	DropDedupTTLSeconds             int `mapstructure:"drop_dedup_ttl_seconds"`
	ParlayGenerationIntervalSeconds int `mapstructure:"parlay_generation_interval_seconds"`
	VerificationCooldownSeconds     int `mapstructure:"verification_cooldown_seconds"`
	ScoringRecomputeEveryNBets      int `mapstructure:"scoring_recompute_every_n_bets"`
	OddsFeedTimeoutSeconds          int `mapstructure:"odds_feed_timeout_seconds"`
	MaxLegsPerBucket                int `mapstructure:"max_legs_per_bucket"`
	MaxParlaysPerStrategySlot       int `mapstructure:"max_parlays_per_strategy_slot"`
	MinBetsForScoring               int `mapstructure:"min_bets_for_scoring"`

	TrueProbabilitySlope    float64       `mapstructure:"true_probability_slope"`
	StrictBookmakers        bool          `mapstructure:"strict_bookmakers"`
	DefaultEventHorizon     time.Duration `mapstructure:"default_event_horizon"`
	HighEVPoolSize          int           `mapstructure:"high_ev_pool_size"`
	ClosingLineWindow       time.Duration `mapstructure:"closing_line_window"`
	SettlementInterval      time.Duration `mapstructure:"settlement_interval"`
	HealthRecomputeInterval time.Duration `mapstructure:"health_recompute_interval"`
	CorrelationCatalogFile  string        `mapstructure:"correlation_catalog_file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig loads configuration from .env, file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8085)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.drops_topic", "raw_drops")
	v.SetDefault("kafka.events_topic", "parlay_events")
	v.SetDefault("kafka.group_id", "parlay-intel")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.report_ttl", 5*time.Minute)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:parlay_intel.db?_time_format=sqlite")

	v.SetDefault("oddsfeed.base_url", "https://api.the-odds-api.com")
	v.SetDefault("oddsfeed.api_key", "")
	v.SetDefault("oddsfeed.regions", "eu,us")
	v.SetDefault("oddsfeed.bookmakers", []string{})
	v.SetDefault("oddsfeed.requests_per_second", 1.0)
	v.SetDefault("oddsfeed.max_retries", 2)

	v.SetDefault("engine.drop_dedup_ttl_seconds", 86400)
	v.SetDefault("engine.parlay_generation_interval_seconds", 3600)
	v.SetDefault("engine.verification_cooldown_seconds", 300)
	v.SetDefault("engine.scoring_recompute_every_n_bets", 10)
	v.SetDefault("engine.odds_feed_timeout_seconds", 15)
	v.SetDefault("engine.max_legs_per_bucket", 10)
	v.SetDefault("engine.max_parlays_per_strategy_slot", 5)
	v.SetDefault("engine.min_bets_for_scoring", 10)
	v.SetDefault("engine.true_probability_slope", 0.3)
	v.SetDefault("engine.strict_bookmakers", false)
	v.SetDefault("engine.default_event_horizon", 12*time.Hour)
	v.SetDefault("engine.high_ev_pool_size", 20)
	v.SetDefault("engine.closing_line_window", 10*time.Minute)
	v.SetDefault("engine.settlement_interval", 30*time.Minute)
	v.SetDefault("engine.health_recompute_interval", 24*time.Hour)
	v.SetDefault("engine.correlation_catalog_file", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("PARLAY_INTEL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the service cannot run with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Engine.MinBetsForScoring < 1 {
		return fmt.Errorf("engine.min_bets_for_scoring must be positive")
	}
	if c.Engine.ScoringRecomputeEveryNBets < 1 {
		return fmt.Errorf("engine.scoring_recompute_every_n_bets must be positive")
	}
	return nil
}

// DedupTTL is how long a drop fingerprint stays in the dedup set
func (c *EngineConfig) DedupTTL() time.Duration {
	return time.Duration(c.DropDedupTTLSeconds) * time.Second
}

// GenerationInterval is the housekeeping wake of the parlay scheduler
func (c *EngineConfig) GenerationInterval() time.Duration {
	return time.Duration(c.ParlayGenerationIntervalSeconds) * time.Second
}

// VerificationCooldown is the per-user verification window
func (c *EngineConfig) VerificationCooldown() time.Duration {
	return time.Duration(c.VerificationCooldownSeconds) * time.Second
}

// OddsFeedTimeout bounds every outbound feed call
func (c *EngineConfig) OddsFeedTimeout() time.Duration {
	return time.Duration(c.OddsFeedTimeoutSeconds) * time.Second
}

// ToEngineConfig converts config to parlay generation parameters
func (c *EngineConfig) ToEngineConfig() parlay.EngineConfig {
	return parlay.EngineConfig{
		MaxLegsPerBucket:     c.MaxLegsPerBucket,
		MaxParlaysPerSlot:    c.MaxParlaysPerStrategySlot,
		TrueProbabilitySlope: c.TrueProbabilitySlope,
		HighEVPoolSize:       c.HighEVPoolSize,
	}
}

// ToScorerConfig converts config to book health scoring parameters
func (c *EngineConfig) ToScorerConfig() bookhealth.ScorerConfig {
	return bookhealth.ScorerConfig{
		MinBets: c.MinBetsForScoring,
	}
}
