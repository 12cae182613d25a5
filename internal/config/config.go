// Package config loads application configuration from file and
// environment, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/leadintel/leadscan/internal/leadgen"
	"github.com/leadintel/leadscan/internal/outreach"
	"github.com/leadintel/leadscan/internal/scorer"
	"github.com/leadintel/leadscan/internal/source"
	"github.com/leadintel/leadscan/internal/synth"
)

// Config holds the full application configuration. API keys are
// optional: with no key configured, scans fall back to the synthetic
// generator and drafts to the template, which is the intended demo mode
// rather than an error.
type Config struct {
	Anthropic AnthropicConfig          `yaml:"anthropic" mapstructure:"anthropic"`
	Places    PlacesConfig             `yaml:"places" mapstructure:"places"`
	Scoring   scorer.Config            `yaml:"scoring" mapstructure:"scoring"`
	Synth     synth.Config             `yaml:"synth" mapstructure:"synth"`
	Scan      leadgen.Config           `yaml:"scan" mapstructure:"scan"`
	AISource  source.AIConfig          `yaml:"ai_source" mapstructure:"ai_source"`
	Outreach  outreach.Config          `yaml:"outreach" mapstructure:"outreach"`
	Generator outreach.GeneratorConfig `yaml:"generator" mapstructure:"generator"`
	Server    ServerConfig             `yaml:"server" mapstructure:"server"`
	Log       LogConfig                `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// PlacesConfig holds business directory API settings.
type PlacesConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port            int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	ShutdownTimeout int      `yaml:"shutdown_timeout_secs" mapstructure:"shutdown_timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.shutdown_timeout_secs", 10)

	scoring := scorer.DefaultConfig()
	v.SetDefault("scoring.online_presence_weight", scoring.OnlinePresenceWeight)
	v.SetDefault("scoring.website_quality_weight", scoring.WebsiteQualityWeight)
	v.SetDefault("scoring.seo_opportunity_weight", scoring.SEOOpportunityWeight)
	v.SetDefault("scoring.relevancy_weight", scoring.RelevancyWeight)
	v.SetDefault("scoring.low_review_threshold", scoring.LowReviewThreshold)
	v.SetDefault("scoring.low_rating_seo", scoring.LowRatingSEO)
	v.SetDefault("scoring.low_rating_reputation", scoring.LowRatingReputation)

	sy := synth.DefaultConfig()
	v.SetDefault("synth.min_count", sy.MinCount)
	v.SetDefault("synth.max_count", sy.MaxCount)
	v.SetDefault("synth.min_rating", sy.MinRating)
	v.SetDefault("synth.max_rating", sy.MaxRating)
	v.SetDefault("synth.min_reviews", sy.MinReviews)
	v.SetDefault("synth.max_reviews", sy.MaxReviews)
	v.SetDefault("synth.website_probability", sy.WebsiteProbability)

	v.SetDefault("scan.fetch_timeout_secs", leadgen.DefaultConfig().FetchTimeoutSecs)
	v.SetDefault("outreach.generate_timeout_secs", outreach.DefaultConfig().GenerateTimeoutSecs)

	ai := source.DefaultAIConfig()
	v.SetDefault("ai_source.model", ai.Model)
	v.SetDefault("ai_source.max_tokens", ai.MaxTokens)
	v.SetDefault("ai_source.count", ai.Count)

	gen := outreach.DefaultGeneratorConfig()
	v.SetDefault("generator.model", gen.Model)
	v.SetDefault("generator.max_tokens", gen.MaxTokens)
	v.SetDefault("generator.temperature", gen.Temperature)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := scorer.ValidateConfig(cfg.Scoring); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
