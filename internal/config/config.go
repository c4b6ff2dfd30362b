// Package config handles loading and validating the application
// configuration from an optional YAML file with environment variable
// substitution. A missing config file is valid: the monitor runs on
// defaults with zero required arguments.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/gag"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/notify"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/watchlist"
)

// MinPollInterval keeps the poll rate safely under the upstream contract
// of 5 requests per minute. Shorter configured intervals are clamped.
const MinPollInterval = 15 * time.Second

// Config is the top-level application configuration.
type Config struct {
	API           APIConfig           `yaml:"api"`
	Poll          PollConfig          `yaml:"poll"`
	Files         FilesConfig         `yaml:"files"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Display       DisplayConfig       `yaml:"display"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// APIConfig defines upstream Grow A Garden API settings.
type APIConfig struct {
	BaseURL   string          `yaml:"base_url"`
	Timeout   time.Duration   `yaml:"timeout"`
	UserAgent string          `yaml:"user_agent"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines upstream API rate limiting settings.
type RateLimitConfig struct {
	PerMinute  float64 `yaml:"per_minute"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// PollConfig defines the polling loop settings.
type PollConfig struct {
	Interval         time.Duration `yaml:"interval"`
	MaxBackoffFactor int           `yaml:"max_backoff_factor"`
}

// FilesConfig locates the two flat-file inputs.
type FilesConfig struct {
	Watchlist string `yaml:"watchlist"`
	Webhook   string `yaml:"webhook"`
}

// NotificationsConfig defines alert dispatch behavior.
type NotificationsConfig struct {
	BatchThreshold int `yaml:"batch_threshold"`
}

// DisplayConfig defines terminal output settings.
type DisplayConfig struct {
	NoColor bool `yaml:"no_color"`
}

// MetricsConfig defines the optional Prometheus listener. Empty addr
// disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment
// variable substitution and validation. A missing file yields the
// default configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Run on defaults.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyAPIDefaults(&cfg.API)
	applyPollDefaults(&cfg.Poll)
	applyFilesDefaults(&cfg.Files)
	applyNotificationsDefaults(&cfg.Notifications)
	applyLoggingDefaults(&cfg.Logging)
}

func applyAPIDefaults(a *APIConfig) {
	if a.BaseURL == "" {
		a.BaseURL = gag.DefaultBaseURL
	}
	if a.Timeout == 0 {
		a.Timeout = 10 * time.Second
	}
	applyRateLimitDefaults(&a.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerMinute == 0 {
		r.PerMinute = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 1
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyPollDefaults(p *PollConfig) {
	if p.Interval == 0 {
		p.Interval = 60 * time.Second
	}
	if p.Interval < MinPollInterval {
		p.Interval = MinPollInterval
	}
	if p.MaxBackoffFactor == 0 {
		p.MaxBackoffFactor = 4
	}
}

func applyFilesDefaults(f *FilesConfig) {
	if f.Watchlist == "" {
		f.Watchlist = watchlist.DefaultPath
	}
	if f.Webhook == "" {
		f.Webhook = notify.DefaultWebhookPath
	}
}

func applyNotificationsDefaults(n *NotificationsConfig) {
	if n.BatchThreshold == 0 {
		n.BatchThreshold = 5
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		errs = append(errs, fmt.Errorf("api.base_url is not a valid URL: %w", err))
	} else if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute http(s) URL (got %q)", cfg.API.BaseURL))
	}

	if cfg.Poll.MaxBackoffFactor < 1 {
		errs = append(errs, fmt.Errorf("poll.max_backoff_factor must be >= 1 (got %d)", cfg.Poll.MaxBackoffFactor))
	}

	if cfg.Notifications.BatchThreshold < 1 {
		errs = append(errs, fmt.Errorf("notifications.batch_threshold must be >= 1 (got %d)", cfg.Notifications.BatchThreshold))
	}

	if cfg.API.RateLimit.PerMinute < 0 {
		errs = append(errs, fmt.Errorf("api.rate_limit.per_minute must not be negative"))
	}

	return errors.Join(errs...)
}
