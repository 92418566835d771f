// internal/cache/cache.go
package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/law-makers/courtdata/pkg/models"
)

// Backend is the slice of the query log the cache needs: the newest live
// success per identity, and append. The log itself is append-only, so the
// cache never evicts; freshness is decided here at lookup time.
type Backend interface {
	LatestLiveSuccess(ctx context.Context, identity models.CaseIdentity) (*models.CaseRecord, error)
	InsertCaseRecord(ctx context.Context, rec *models.CaseRecord) (int64, error)
}

// ResultCache answers "is there a fresh enough prior result for this
// identity". A hit requires a successful, live-provenance record younger
// than the freshness window. Failed and placeholder records are always
// misses so they get retried.
type ResultCache struct {
	backend Backend
	ttl     time.Duration
}

// DefaultTTL matches how often the court site's case status meaningfully changes.
const DefaultTTL = time.Hour

// New creates a ResultCache over the given backend.
func New(backend Backend, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{backend: backend, ttl: ttl}
}

// Lookup returns the cached record and true on a fresh hit.
func (c *ResultCache) Lookup(ctx context.Context, identity models.CaseIdentity) (*models.CaseRecord, bool) {
	rec, err := c.backend.LatestLiveSuccess(ctx, identity)
	if err != nil {
		log.Warn().Err(err).Msg("Cache lookup failed, treating as miss")
		return nil, false
	}
	if rec == nil {
		return nil, false
	}

	age := time.Since(rec.Timestamp)
	if age > c.ttl {
		log.Debug().
			Dur("age", age).
			Dur("ttl", c.ttl).
			Msg("Cached record is stale")
		return nil, false
	}

	log.Info().
		Str("case_type", identity.CaseType).
		Str("case_number", identity.CaseNumber).
		Int("filing_year", identity.FilingYear).
		Dur("age", age).
		Msg("Cache hit")
	return rec, true
}

// Store appends the record to the log. It never overwrites: history is kept
// and recency decides which record a later Lookup sees.
func (c *ResultCache) Store(ctx context.Context, rec *models.CaseRecord) error {
	_, err := c.backend.InsertCaseRecord(ctx, rec)
	return err
}
