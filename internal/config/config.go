package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Court site
	SearchURL string
	BaseURL   string
	UserAgent string
	Proxy     string

	// Browser session
	SessionTimeout time.Duration
	SettleDelay    time.Duration
	Headless       bool
	ChromePath     string

	// Document fetches
	HTTPTimeout time.Duration
	DownloadDir string

	// Rate Limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Storage and caching
	DBPath   string
	CacheTTL time.Duration

	// Feature Flags
	DisablePlaceholder bool
}

// Load builds a Config by combining defaults, environment variables, and CLI
// flags, in that order of increasing precedence. Caller should pass the root
// *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:       DefaultLogLevel,
		JSONLog:        DefaultJSONLog,
		SearchURL:      DefaultSearchURL,
		BaseURL:        DefaultBaseURL,
		UserAgent:      DefaultUserAgent,
		SessionTimeout: DefaultSessionTimeout,
		SettleDelay:    DefaultSettleDelay,
		Headless:       DefaultBrowserHeadless,
		HTTPTimeout:    DefaultHTTPTimeout,
		DownloadDir:    DefaultDownloadDir,
		RateLimitRPS:   DefaultRateLimitRPS,
		RateLimitBurst: DefaultRateLimitBurst,
		DBPath:         DefaultDBPath,
		CacheTTL:       DefaultCacheTTL,
	}

	// Override from environment variables (simple helpers)
	if v := os.Getenv("COURTDATA_SEARCH_URL"); v != "" {
		cfg.SearchURL = v
	}
	if v := os.Getenv("COURTDATA_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("COURTDATA_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("COURTDATA_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("COURTDATA_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("COURTDATA_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("COURTDATA_DOWNLOAD_DIR"); v != "" {
		cfg.DownloadDir = v
	}
	if v := os.Getenv("COURTDATA_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = d
		}
	}
	if v := os.Getenv("COURTDATA_DISABLE_PLACEHOLDER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DisablePlaceholder = b
		}
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("search-url"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.SearchURL = s
			}
		}
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("proxy"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.Proxy = s
			}
		}
		if f := cmd.Flags().Lookup("db"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.DBPath = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.SessionTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("no-headless"); f != nil {
			if f.Value.String() == "true" {
				cfg.Headless = false
			}
		}
		if f := cmd.Flags().Lookup("no-placeholder"); f != nil {
			if f.Value.String() == "true" {
				cfg.DisablePlaceholder = true
			}
		}
		if f := cmd.Flags().Lookup("json-log"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
