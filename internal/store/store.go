// internal/store/store.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/law-makers/courtdata/pkg/models"
)

// Schema for the query/download log. Applied by Open. The log is append-only:
// no statement in this package updates or deletes a row, so concurrent
// pipelines only ever contend on inserts.
const Schema = `
CREATE TABLE IF NOT EXISTS case_queries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	case_type TEXT NOT NULL,
	case_number TEXT NOT NULL,
	filing_year INTEGER NOT NULL,
	success INTEGER NOT NULL DEFAULT 0,
	provenance TEXT NOT NULL DEFAULT 'live',
	parties_summary TEXT NOT NULL DEFAULT '',
	filing_date TEXT NOT NULL DEFAULT '',
	next_hearing_date TEXT NOT NULL DEFAULT '',
	case_status TEXT NOT NULL DEFAULT '',
	document_links TEXT NOT NULL DEFAULT '[]',
	raw_html TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_case_queries_identity
	ON case_queries(case_type, case_number, filing_year, timestamp);

CREATE TABLE IF NOT EXISTS document_downloads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	case_query_id INTEGER NOT NULL,
	url TEXT NOT NULL,
	success INTEGER NOT NULL DEFAULT 0,
	file_size INTEGER NOT NULL DEFAULT 0,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_document_downloads_query
	ON document_downloads(case_query_id);
`

// Store persists case retrieval attempts and document download outcomes.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite log at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("Query log opened")
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertCaseRecord appends one retrieval attempt and fills in rec.ID.
// Records are never mutated afterwards; later attempts supersede by recency.
func (s *Store) InsertCaseRecord(ctx context.Context, rec *models.CaseRecord) (int64, error) {
	links, err := json.Marshal(rec.DocumentLinks)
	if err != nil {
		return 0, fmt.Errorf("marshal document links: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO case_queries
			(case_type, case_number, filing_year, success, provenance,
			 parties_summary, filing_date, next_hearing_date, case_status,
			 document_links, raw_html, error_message, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Identity.CaseType, rec.Identity.CaseNumber, rec.Identity.FilingYear,
		boolToInt(rec.Success), string(rec.Provenance),
		rec.PartiesSummary, rec.FilingDate, rec.NextHearingDate, rec.CaseStatus,
		string(links), rec.RawMarkup, rec.ErrorMessage, rec.Timestamp.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert case record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id
	return id, nil
}

// LatestLiveSuccess returns the most recent successful live-provenance record
// for the identity, or nil when none exists. Freshness is the cache's call.
func (s *Store) LatestLiveSuccess(ctx context.Context, identity models.CaseIdentity) (*models.CaseRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, success, provenance, parties_summary, filing_date,
		       next_hearing_date, case_status, document_links, raw_html,
		       error_message, timestamp
		FROM case_queries
		WHERE case_type = ? AND case_number = ? AND filing_year = ?
		  AND success = 1 AND provenance = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`,
		identity.CaseType, identity.CaseNumber, identity.FilingYear,
		string(models.ProvenanceLive),
	)

	rec, err := scanRecord(row, identity)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// History returns the most recent retrieval attempts, newest first.
// Raw markup is omitted; it can be megabytes per row.
func (s *Store) History(ctx context.Context, limit int) ([]models.CaseRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, case_type, case_number, filing_year, success, provenance,
		       parties_summary, filing_date, next_hearing_date, case_status,
		       document_links, error_message, timestamp
		FROM case_queries
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []models.CaseRecord
	for rows.Next() {
		var rec models.CaseRecord
		var success int
		var provenance, links string
		var ts int64
		if err := rows.Scan(&rec.ID,
			&rec.Identity.CaseType, &rec.Identity.CaseNumber, &rec.Identity.FilingYear,
			&success, &provenance,
			&rec.PartiesSummary, &rec.FilingDate, &rec.NextHearingDate, &rec.CaseStatus,
			&links, &rec.ErrorMessage, &ts,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		rec.Success = success == 1
		rec.Provenance = models.Provenance(provenance)
		rec.Timestamp = time.Unix(ts, 0)
		if err := json.Unmarshal([]byte(links), &rec.DocumentLinks); err != nil {
			log.Warn().Err(err).Int64("id", rec.ID).Msg("Corrupt document_links column, skipping links")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// InsertDownload appends one document download outcome.
func (s *Store) InsertDownload(ctx context.Context, dl *models.DownloadRecord) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO document_downloads (case_query_id, url, success, file_size, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		dl.CaseQueryID, dl.URL, boolToInt(dl.Success), dl.FileSize, dl.Timestamp.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert download record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	dl.ID = id
	return id, nil
}

func scanRecord(row *sql.Row, identity models.CaseIdentity) (*models.CaseRecord, error) {
	var rec models.CaseRecord
	var success int
	var provenance, links string
	var ts int64

	err := row.Scan(&rec.ID, &success, &provenance,
		&rec.PartiesSummary, &rec.FilingDate, &rec.NextHearingDate, &rec.CaseStatus,
		&links, &rec.RawMarkup, &rec.ErrorMessage, &ts)
	if err != nil {
		return nil, err
	}

	rec.Identity = identity
	rec.Success = success == 1
	rec.Provenance = models.Provenance(provenance)
	rec.Timestamp = time.Unix(ts, 0)
	if err := json.Unmarshal([]byte(links), &rec.DocumentLinks); err != nil {
		return nil, fmt.Errorf("unmarshal document links: %w", err)
	}
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
