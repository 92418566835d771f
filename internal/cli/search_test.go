package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/law-makers/courtdata/internal/app"
	"github.com/law-makers/courtdata/internal/cache"
	"github.com/law-makers/courtdata/internal/config"
	"github.com/law-makers/courtdata/internal/fetch"
	"github.com/law-makers/courtdata/internal/store"
)

// A failed lookup must surface as an error return so the shutdown path in
// Execute still runs; exiting from inside a command would leave the query
// log open.
func TestRunSearch_FailedLookupReturnsError(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "cli_test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	c := cache.New(s, time.Hour)
	logger := zerolog.Nop()
	SetApp(rootCmd, &app.Application{
		Config:       &config.Config{BaseURL: "https://example.org/"},
		Logger:       &logger,
		Store:        s,
		Cache:        c,
		Orchestrator: fetch.NewOrchestrator(c, "https://example.org/"),
	})
	t.Cleanup(func() { SetApp(rootCmd, nil) })

	caseType = "W.P.(C)"
	caseNumber = "1234"
	filingYear = 2019
	saveMarkdown = ""
	jsonOutput = false

	searchCmd.SetContext(context.Background())
	err = runSearch(searchCmd, nil)
	if !errors.Is(err, errCaseLookupFailed) {
		t.Errorf("expected errCaseLookupFailed, got %v", err)
	}
}
