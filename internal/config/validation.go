package config

import (
	"fmt"
	"time"

	"github.com/law-makers/courtdata/internal/urlutil"
)

func validate(c *Config) error {
	if err := urlutil.Validate(c.SearchURL); err != nil {
		return fmt.Errorf("search url: %w", err)
	}
	if err := urlutil.Validate(c.BaseURL); err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if c.SessionTimeout <= 0 {
		return fmt.Errorf("session timeout must be > 0")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit rps must be > 0")
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be > 0")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must be >= 0")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path must not be empty")
	}
	return nil
}

// ValidateFilingYear checks a user-supplied filing year against the range the
// court's records can plausibly cover. Next year is allowed so that cases
// filed around new year are queryable regardless of timezone.
func ValidateFilingYear(year int) error {
	max := time.Now().Year() + 1
	if year < MinFilingYear || year > max {
		return fmt.Errorf("filing year must be between %d and %d, got %d", MinFilingYear, max, year)
	}
	return nil
}
