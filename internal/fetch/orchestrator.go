// internal/fetch/orchestrator.go
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/law-makers/courtdata/internal/cache"
	"github.com/law-makers/courtdata/internal/extract"
	"github.com/law-makers/courtdata/pkg/models"
)

// Orchestrator runs the retrieval pipeline for one case identity: cache
// lookup, then each strategy in order until one succeeds, then field and
// link extraction, then append to the query log. It always returns a
// record; failure is expressed through the record, not through panics.
type Orchestrator struct {
	strategies []Strategy
	cache      *cache.ResultCache
	rules      extract.Rules
	baseURL    string
}

// NewOrchestrator builds the pipeline. Strategies are tried in the order
// given; baseURL anchors relative document links found in result pages.
func NewOrchestrator(c *cache.ResultCache, baseURL string, strategies ...Strategy) *Orchestrator {
	return &Orchestrator{
		strategies: strategies,
		cache:      c,
		rules:      extract.DefaultRules(),
		baseURL:    baseURL,
	}
}

// Retrieve returns the case record for the identity, fetching it if no
// fresh cached result exists. The returned record always reflects the
// outcome; the error is non-nil only when the context ended before a
// conclusion was reached.
func (o *Orchestrator) Retrieve(ctx context.Context, identity models.CaseIdentity) (*models.CaseRecord, error) {
	if rec, ok := o.cache.Lookup(ctx, identity); ok {
		return rec, nil
	}

	var causes []string
	var last *models.FetchResult
	for _, s := range o.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := s.Fetch(ctx, identity)
		if res == nil {
			res = &models.FetchResult{
				Success:       false,
				FailureKind:   models.FailureDriverError,
				FailureDetail: "strategy returned no result",
			}
		}
		last = res
		if err != nil {
			log.Warn().Err(err).Str("strategy", s.Name()).Msg("Fetch strategy failed")
		}

		if res.Success {
			rec, perr := o.buildRecord(identity, res)
			if perr != nil {
				log.Warn().Err(perr).Str("strategy", s.Name()).Msg("Extraction failed on fetched markup")
				causes = append(causes, perr.Error())
				continue
			}
			o.persist(ctx, rec)
			return rec, nil
		}

		pe := newPipelineError(res.FailureKind, s.Name(), res.FailureDetail, err)
		// An explicit "no records found" answer from the live site is
		// conclusive: the case does not exist, so no fallback runs.
		if res.FailureKind == models.FailureNotFound {
			rec := o.failedRecord(identity, res, pe.Error())
			o.persist(ctx, rec)
			return rec, nil
		}
		causes = append(causes, pe.Error())
	}

	rec := o.failedRecord(identity, last, strings.Join(causes, "; "))
	o.persist(ctx, rec)
	return rec, nil
}

// buildRecord runs the extractors over successful markup. Extraction is
// total over well-formed input, but hostile pages have surprised us before,
// so a panic here is converted into a parse failure instead of taking the
// whole query down.
func (o *Orchestrator) buildRecord(identity models.CaseIdentity, res *models.FetchResult) (rec *models.CaseRecord, err *PipelineError) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = newPipelineError(models.FailureParseError, "extract",
				fmt.Sprintf("panic while parsing result page: %v", r), nil)
		}
	}()

	fields := extract.Fields(res.RawMarkup, o.rules)
	links := extract.Links(res.RawMarkup, o.baseURL)

	return &models.CaseRecord{
		Identity:        identity,
		Success:         true,
		Provenance:      res.Provenance,
		PartiesSummary:  fields.PartiesSummary,
		FilingDate:      fields.FilingDate,
		NextHearingDate: fields.NextHearingDate,
		CaseStatus:      fields.CaseStatus,
		DocumentLinks:   links,
		RawMarkup:       res.RawMarkup,
		Timestamp:       time.Now(),
	}, nil
}

// failedRecord keeps the last strategy result's raw markup and provenance on
// the failed record; the markup is what a failure gets diagnosed from.
func (o *Orchestrator) failedRecord(identity models.CaseIdentity, res *models.FetchResult, detail string) *models.CaseRecord {
	if detail == "" {
		detail = "retrieval failed with no recorded cause"
	}
	provenance := models.ProvenanceLive
	var rawMarkup string
	if res != nil {
		if res.Provenance != "" {
			provenance = res.Provenance
		}
		rawMarkup = res.RawMarkup
	}
	return &models.CaseRecord{
		Identity:     identity,
		Success:      false,
		Provenance:   provenance,
		RawMarkup:    rawMarkup,
		ErrorMessage: detail,
		Timestamp:    time.Now(),
	}
}

// persist appends the outcome to the query log. A write failure is logged
// and swallowed: the caller still gets the record it asked for.
func (o *Orchestrator) persist(ctx context.Context, rec *models.CaseRecord) {
	if err := o.cache.Store(ctx, rec); err != nil {
		log.Error().Err(err).Msg("Failed to append query record")
	}
}
