package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Crawl     CrawlConfig     `yaml:"crawl" mapstructure:"crawl"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the SQLite bookkeeping store.
type StoreConfig struct {
	Path          string `yaml:"path" mapstructure:"path"`
	CacheTTLHours int    `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	HaikuModel  string `yaml:"haiku_model" mapstructure:"haiku_model"`
	SonnetModel string `yaml:"sonnet_model" mapstructure:"sonnet_model"`
}

// CrawlConfig configures vendor-page discovery.
type CrawlConfig struct {
	MaxDepth        int     `yaml:"max_depth" mapstructure:"max_depth"`
	MaxCandidates   int     `yaml:"max_candidates" mapstructure:"max_candidates"`
	TopLinks        int     `yaml:"top_links" mapstructure:"top_links"`
	FetchDelayMS    int     `yaml:"fetch_delay_ms" mapstructure:"fetch_delay_ms"`
	TimeoutSecs     int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MinContentScore float64 `yaml:"min_content_score" mapstructure:"min_content_score"`
	MinLinkScore    float64 `yaml:"min_link_score" mapstructure:"min_link_score"`
	UserAgent       string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// ExtractConfig configures LLM vendor extraction.
type ExtractConfig struct {
	Model           string  `yaml:"model" mapstructure:"model"`
	MaxTokens       int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature     float64 `yaml:"temperature" mapstructure:"temperature"`
	CallDelayMS     int     `yaml:"call_delay_ms" mapstructure:"call_delay_ms"`
	MaxContentChars int     `yaml:"max_content_chars" mapstructure:"max_content_chars"`
	MaxRetries      int     `yaml:"max_retries" mapstructure:"max_retries"`
	PagesPerMarket  int     `yaml:"pages_per_market" mapstructure:"pages_per_market"`
}

// BatchConfig configures batch runs over a market list.
type BatchConfig struct {
	CheckpointEvery int    `yaml:"checkpoint_every" mapstructure:"checkpoint_every"`
	CheckpointDir   string `yaml:"checkpoint_dir" mapstructure:"checkpoint_dir"`
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
	v.SetEnvPrefix("VENDORSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	for key, val := range Defaults() {
		v.SetDefault(key, val)
	}

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

	return &cfg, nil
}

// Defaults returns every config key with its default value. The init command
// uses the same map to write a starter config file.
func Defaults() map[string]any {
	return map[string]any{
		"store.path":                "vendor-scout.db",
		"store.cache_ttl_hours":     24,
		"log.level":                 "info",
		"log.format":                "json",
		"anthropic.haiku_model":     "claude-haiku-4-5-20251001",
		"anthropic.sonnet_model":    "claude-sonnet-4-5-20250929",
		"crawl.max_depth":           2,
		"crawl.max_candidates":      5,
		"crawl.top_links":           3,
		"crawl.fetch_delay_ms":      1500,
		"crawl.timeout_secs":        10,
		"crawl.min_content_score":   0.3,
		"crawl.min_link_score":      0.2,
		"crawl.user_agent":          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		"extract.model":             "claude-haiku-4-5-20251001",
		"extract.max_tokens":        4000,
		"extract.temperature":       0.0,
		"extract.call_delay_ms":     1000,
		"extract.max_content_chars": 8000,
		"extract.max_retries":       3,
		"extract.pages_per_market":  3,
		"batch.checkpoint_every":    10,
		"batch.checkpoint_dir":      ".",
	}
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
