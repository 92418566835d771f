package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel  = "info"
	DefaultJSONLog   = false
	DefaultUserAgent = "CourtData/1.0 (https://github.com/law-makers/courtdata)"

	// Delhi High Court case-status search form and the base used to
	// resolve relative document links found in result pages.
	DefaultSearchURL = "https://delhihighcourt.nic.in/app/get-case-type-status"
	DefaultBaseURL   = "https://delhihighcourt.nic.in/"

	DefaultSessionTimeout = 60 * time.Second
	DefaultSettleDelay    = 3 * time.Second
	DefaultHTTPTimeout    = 30 * time.Second

	DefaultRateLimitRPS   = 0.5
	DefaultRateLimitBurst = 2

	DefaultBrowserHeadless = true

	DefaultCacheTTL    = time.Hour
	DefaultDBPath      = "courtdata.db"
	DefaultDownloadDir = "downloads"

	// Earliest filing year the court's electronic records reach back to.
	MinFilingYear = 1950
)
