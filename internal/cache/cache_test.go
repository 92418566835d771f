package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/law-makers/courtdata/internal/store"
	"github.com/law-makers/courtdata/pkg/models"
)

func newTestCache(t *testing.T, ttl time.Duration) *ResultCache {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "cache_test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s, ttl)
}

func identity() models.CaseIdentity {
	return models.CaseIdentity{CaseType: "CRL.A.", CaseNumber: "77", FilingYear: 2021}
}

func TestStoreThenLookup_Hit(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()

	rec := &models.CaseRecord{
		Identity:   identity(),
		Success:    true,
		Provenance: models.ProvenanceLive,
		CaseStatus: "Pending",
		Timestamp:  time.Now(),
	}
	if err := c.Store(ctx, rec); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, ok := c.Lookup(ctx, identity())
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.CaseStatus != "Pending" {
		t.Errorf("got %+v", got)
	}
}

func TestLookup_StaleIsMiss(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()

	rec := &models.CaseRecord{
		Identity:   identity(),
		Success:    true,
		Provenance: models.ProvenanceLive,
		Timestamp:  time.Now().Add(-2 * time.Hour),
	}
	if err := c.Store(ctx, rec); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Lookup(ctx, identity()); ok {
		t.Error("record older than the freshness window must be a miss")
	}
}

func TestLookup_FailedRecordIsMissRegardlessOfRecency(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()

	rec := &models.CaseRecord{
		Identity:     identity(),
		Success:      false,
		Provenance:   models.ProvenanceLive,
		ErrorMessage: "timed out",
		Timestamp:    time.Now(),
	}
	if err := c.Store(ctx, rec); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Lookup(ctx, identity()); ok {
		t.Error("failed records must never be served from cache")
	}
}

func TestLookup_PlaceholderIsNeverAHit(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()

	rec := &models.CaseRecord{
		Identity:   identity(),
		Success:    true,
		Provenance: models.ProvenancePlaceholder,
		Timestamp:  time.Now(),
	}
	if err := c.Store(ctx, rec); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Lookup(ctx, identity()); ok {
		t.Error("placeholder results must never satisfy a cache lookup")
	}
}

func TestLookup_DifferentIdentityIsMiss(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()

	rec := &models.CaseRecord{
		Identity:   identity(),
		Success:    true,
		Provenance: models.ProvenanceLive,
		Timestamp:  time.Now(),
	}
	if err := c.Store(ctx, rec); err != nil {
		t.Fatal(err)
	}

	other := identity()
	other.FilingYear = 2022
	if _, ok := c.Lookup(ctx, other); ok {
		t.Error("identity equality must be exact")
	}
}
