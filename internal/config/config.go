// Package config loads and validates crawler configuration via Viper.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/siteharvest/siteharvest/internal/crawler"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Crawl   CrawlConfig   `mapstructure:"crawl"`
	Input   InputConfig   `mapstructure:"input"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CrawlConfig governs scheduler and fetch behavior.
type CrawlConfig struct {
	Mode              string   `mapstructure:"mode"`
	Concurrency       int      `mapstructure:"concurrency"`
	InterBatchDelayMs int      `mapstructure:"inter_batch_delay_ms"`
	RequestTimeoutMs  int      `mapstructure:"request_timeout_ms"`
	MaxRedirects      int      `mapstructure:"max_redirects"`
	IncludePattern    string   `mapstructure:"include_pattern"`
	UserAgents        []string `mapstructure:"user_agents"`
}

// InputConfig locates the externally supplied URL list.
type InputConfig struct {
	URLFile string `mapstructure:"url_file"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk and environment. path may be empty, in
// which case only defaults and SITEHARVEST_* environment variables apply.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SITEHARVEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("crawl.mode", "page")
	v.SetDefault("crawl.concurrency", 5)
	v.SetDefault("crawl.inter_batch_delay_ms", 500)
	v.SetDefault("crawl.request_timeout_ms", 15000)
	v.SetDefault("crawl.max_redirects", 5)
	v.SetDefault("input.url_file", "urls.txt")
	v.SetDefault("logging.development", false)
}

// Validate checks for obviously bad configuration combinations. The runtime
// crawl config gets its own validation in CrawlerConfig.
func (c Config) Validate() error {
	if c.Input.URLFile == "" {
		return fmt.Errorf("input.url_file must be set")
	}
	if c.Crawl.IncludePattern != "" {
		if _, err := regexp.Compile(c.Crawl.IncludePattern); err != nil {
			return fmt.Errorf("crawl.include_pattern: %w", err)
		}
	}
	return nil
}

// CrawlerConfig converts the loaded settings into the runtime crawl config.
func (c Config) CrawlerConfig() (crawler.Config, error) {
	cfg := crawler.DefaultConfig()
	cfg.Mode = crawler.Mode(c.Crawl.Mode)
	if c.Crawl.Concurrency > 0 {
		cfg.Concurrency = c.Crawl.Concurrency
	}
	if c.Crawl.InterBatchDelayMs >= 0 {
		cfg.InterBatchDelay = time.Duration(c.Crawl.InterBatchDelayMs) * time.Millisecond
	}
	if c.Crawl.RequestTimeoutMs > 0 {
		cfg.RequestTimeout = time.Duration(c.Crawl.RequestTimeoutMs) * time.Millisecond
	}
	if c.Crawl.MaxRedirects > 0 {
		cfg.MaxRedirects = c.Crawl.MaxRedirects
	}
	if c.Crawl.IncludePattern != "" {
		re, err := regexp.Compile(c.Crawl.IncludePattern)
		if err != nil {
			return crawler.Config{}, fmt.Errorf("crawl.include_pattern: %w", err)
		}
		cfg.IncludeFilter = re
	}
	if len(c.Crawl.UserAgents) > 0 {
		cfg.UserAgents = c.Crawl.UserAgents
	}
	return cfg, cfg.Validate()
}
