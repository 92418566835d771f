// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/courtdata/internal/cache"
	"github.com/law-makers/courtdata/internal/config"
	"github.com/law-makers/courtdata/internal/downloader"
	"github.com/law-makers/courtdata/internal/fetch"
	"github.com/law-makers/courtdata/internal/ratelimit"
	"github.com/law-makers/courtdata/internal/scraper"
	"github.com/law-makers/courtdata/internal/store"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config       *config.Config
	Logger       *zerolog.Logger
	Store        *store.Store
	Cache        *cache.ResultCache
	RateLimiter  ratelimit.RateLimiter
	Driver       *scraper.Driver
	Orchestrator *fetch.Orchestrator
	Downloader   *downloader.Downloader
	startTime    time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Opens the SQLite query log and applies the schema
//   - Creates the result cache over the query log
//   - Creates the shared per-host rate limiter
//   - Creates the browser driver and the retrieval pipeline
//   - Creates the document downloader
//
// If any step fails, an error is returned and no resources are leaked.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	// Initialize logger based on config
	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		// JSON logs to stderr
		logWriter = os.Stderr
	} else {
		// Human-friendly console output otherwise
		logWriter = zerolog.NewConsoleWriter()
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	// Open the query log
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening query log: %w", err)
	}
	logger.Debug().Str("path", cfg.DBPath).Msg("Query log opened")

	resultCache := cache.New(st, cfg.CacheTTL)

	// One limiter budget covers both the browser session and document
	// fetches; the court site sees a single polite client.
	limiter := ratelimit.NewHostLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	driver := scraper.New(scraper.Options{
		SearchURL:      cfg.SearchURL,
		SessionTimeout: cfg.SessionTimeout,
		SettleDelay:    cfg.SettleDelay,
		UserAgent:      cfg.UserAgent,
		Headless:       cfg.Headless,
		ChromePath:     cfg.ChromePath,
		Proxy:          cfg.Proxy,
	}, limiter)

	strategies := []fetch.Strategy{fetch.NewDriverStrategy(driver)}
	if !cfg.DisablePlaceholder {
		strategies = append(strategies, fetch.NewPlaceholderStrategy())
	}
	orchestrator := fetch.NewOrchestrator(resultCache, cfg.BaseURL, strategies...)

	dl := downloader.New(limiter, cfg.HTTPTimeout, cfg.UserAgent)
	logger.Debug().Msg("Retrieval pipeline initialized")

	app := &Application{
		Config:       cfg,
		Logger:       &logger,
		Store:        st,
		Cache:        resultCache,
		RateLimiter:  limiter,
		Driver:       driver,
		Orchestrator: orchestrator,
		Downloader:   dl,
		startTime:    time.Now(),
	}

	logger.Info().Msg("Application initialized successfully")
	return app, nil
}

// Close gracefully shuts down the application and all its resources.
//
// Any errors during shutdown are logged but do not prevent other shutdown
// steps. A context with a timeout should be provided to prevent indefinite
// blocking.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Info().Msg("Shutting down application")

	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing query log")
		}
	}

	uptime := time.Since(a.startTime)
	a.Logger.Info().Dur("uptime", uptime).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
