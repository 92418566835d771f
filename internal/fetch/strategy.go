// internal/fetch/strategy.go
package fetch

import (
	"context"

	"github.com/law-makers/courtdata/internal/scraper"
	"github.com/law-makers/courtdata/pkg/models"
)

// Strategy is one way of obtaining a result page for a case identity.
// Strategies return a tagged FetchResult rather than raising; the
// orchestrator walks an ordered list of them until one succeeds.
type Strategy interface {
	// Fetch attempts to retrieve the case page. The result is never nil;
	// a non-nil error carries session-level detail for logging.
	Fetch(ctx context.Context, identity models.CaseIdentity) (*models.FetchResult, error)

	// Name identifies the strategy in logs and combined error messages.
	Name() string
}

// DriverStrategy adapts the browser form driver to the strategy chain.
type DriverStrategy struct {
	driver *scraper.Driver
}

// NewDriverStrategy wraps a scraper.Driver.
func NewDriverStrategy(d *scraper.Driver) *DriverStrategy {
	return &DriverStrategy{driver: d}
}

func (s *DriverStrategy) Name() string {
	return s.driver.Name()
}

func (s *DriverStrategy) Fetch(ctx context.Context, identity models.CaseIdentity) (*models.FetchResult, error) {
	return s.driver.Search(ctx, identity)
}
