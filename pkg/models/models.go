package models

import "time"

// Provenance marks whether a record came from the live court site or from the
// degraded placeholder path. Consumers must be able to tell the two apart.
type Provenance string

const (
	ProvenanceLive        Provenance = "live"
	ProvenancePlaceholder Provenance = "placeholder"
)

// FailureKind classifies why a retrieval or document fetch did not succeed.
type FailureKind string

const (
	FailureNone                FailureKind = ""
	FailureDriverError         FailureKind = "DRIVER_ERROR"
	FailureTimedOut            FailureKind = "TIMED_OUT"
	FailureChallengePresented  FailureKind = "CHALLENGE_PRESENTED"
	FailureNotFound            FailureKind = "NOT_FOUND"
	FailureAmbiguous           FailureKind = "AMBIGUOUS"
	FailureParseError          FailureKind = "PARSE_ERROR"
	FailureTransportError      FailureKind = "TRANSPORT_ERROR"
	FailureContentTypeMismatch FailureKind = "CONTENT_TYPE_MISMATCH"
)

// CaseIdentity is the triple addressing one court matter. Equality is exact
// string/integer match; callers supply canonical values.
type CaseIdentity struct {
	CaseType   string `json:"case_type"`
	CaseNumber string `json:"case_number"`
	FilingYear int    `json:"filing_year"`
}

// DocumentLink is one discovered document anchor. Order follows the source
// page and duplicates are kept; deduplication is a presentation concern.
type DocumentLink struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// FetchResult is the transient outcome of one fetch strategy. It is never
// persisted as-is; the orchestrator folds it into a CaseRecord.
type FetchResult struct {
	Success       bool
	RawMarkup     string
	Provenance    Provenance
	FailureKind   FailureKind
	FailureDetail string
}

// CaseRecord is one retrieval attempt, written to the query log exactly once.
// Records are never mutated; a later query with the same identity supersedes
// earlier rows. Failed records keep RawMarkup and ErrorMessage for diagnosis.
//
// Extracted string fields are never empty: when a field is absent from the
// source the extractor stores an explicit "not found" sentinel instead.
type CaseRecord struct {
	ID              int64          `json:"id,omitempty"`
	Identity        CaseIdentity   `json:"identity"`
	Success         bool           `json:"success"`
	Provenance      Provenance     `json:"provenance"`
	PartiesSummary  string         `json:"parties_summary"`
	FilingDate      string         `json:"filing_date"`
	NextHearingDate string         `json:"next_hearing_date"`
	CaseStatus      string         `json:"case_status"`
	DocumentLinks   []DocumentLink `json:"document_links"`
	RawMarkup       string         `json:"-"`
	ErrorMessage    string         `json:"error_message,omitempty"`
	Timestamp       time.Time      `json:"timestamp"`
}

// DownloadRecord tracks one document fetch outcome, keyed to the case record
// the document URL came from.
type DownloadRecord struct {
	ID          int64     `json:"id,omitempty"`
	CaseQueryID int64     `json:"case_query_id"`
	URL         string    `json:"url"`
	Success     bool      `json:"success"`
	FileSize    int64     `json:"file_size"`
	Timestamp   time.Time `json:"timestamp"`
}
