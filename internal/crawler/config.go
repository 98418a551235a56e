package crawler

import (
	"fmt"
	"regexp"
	"time"
)

// Config holds the settings for a crawl session. It is decoupled from Viper so
// the crawler can be configured and tested independently of the config layer.
type Config struct {
	Mode            Mode
	Concurrency     int
	InterBatchDelay time.Duration
	RequestTimeout  time.Duration
	MaxRedirects    int
	IncludeFilter   *regexp.Regexp
	UserAgents      []string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Mode:            ModePage,
		Concurrency:     5,
		InterBatchDelay: 500 * time.Millisecond,
		RequestTimeout:  15 * time.Second,
		MaxRedirects:    5,
		UserAgents:      defaultUserAgents,
	}
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	switch c.Mode {
	case ModePage, ModeProduct, ModeArticle:
	default:
		return fmt.Errorf("mode must be one of page, product, article; got %q", c.Mode)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1")
	}
	if c.InterBatchDelay < 0 {
		return fmt.Errorf("inter-batch delay must be >= 0")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be > 0")
	}
	if c.MaxRedirects < 0 {
		return fmt.Errorf("max redirects must be >= 0")
	}
	if len(c.UserAgents) == 0 {
		return fmt.Errorf("user agent pool must not be empty")
	}
	return nil
}
