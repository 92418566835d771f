package fetch

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/law-makers/courtdata/internal/cache"
	"github.com/law-makers/courtdata/internal/store"
	"github.com/law-makers/courtdata/pkg/models"
)

type fakeStrategy struct {
	name   string
	result *models.FetchResult
	err    error
	calls  int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Fetch(ctx context.Context, identity models.CaseIdentity) (*models.FetchResult, error) {
	f.calls++
	return f.result, f.err
}

func newTestOrchestrator(t *testing.T, strategies ...Strategy) (*Orchestrator, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "fetch_test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	c := cache.New(s, cache.DefaultTTL)
	return NewOrchestrator(c, "https://example.org/case/", strategies...), s
}

func testIdentity() models.CaseIdentity {
	return models.CaseIdentity{CaseType: "W.P.(C)", CaseNumber: "1234", FilingYear: 2019}
}

func TestRetrieve_SuccessExtractsFields(t *testing.T) {
	markup := `<html><body>
		<p>Petitioner: State vs Respondent: Acme Ltd</p>
		<p>Filed on: 05-03-2019</p>
		<p>Next Hearing: 25-08-2025</p>
		<p>Status: Pending</p>
		<a href="docs/order1.pdf">Order</a>
	</body></html>`
	live := &fakeStrategy{name: "chromedp", result: &models.FetchResult{
		Success: true, RawMarkup: markup, Provenance: models.ProvenanceLive,
	}}
	o, _ := newTestOrchestrator(t, live)

	rec, err := o.Retrieve(context.Background(), testIdentity())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if !rec.Success || rec.Provenance != models.ProvenanceLive {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.FilingDate != "05-03-2019" {
		t.Errorf("filing date: got %q", rec.FilingDate)
	}
	if len(rec.DocumentLinks) != 1 || rec.DocumentLinks[0].URL != "https://example.org/case/docs/order1.pdf" {
		t.Errorf("document links: %+v", rec.DocumentLinks)
	}
}

func TestRetrieve_TimedOutFallsThroughToPlaceholder(t *testing.T) {
	live := &fakeStrategy{name: "chromedp", result: &models.FetchResult{
		Success: false, FailureKind: models.FailureTimedOut, FailureDetail: "session deadline exceeded",
	}}
	o, _ := newTestOrchestrator(t, live, NewPlaceholderStrategy())

	rec, err := o.Retrieve(context.Background(), testIdentity())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if live.calls != 1 {
		t.Errorf("live strategy called %d times", live.calls)
	}
	if !rec.Success {
		t.Fatalf("expected placeholder success, got %+v", rec)
	}
	if rec.Provenance != models.ProvenancePlaceholder {
		t.Errorf("provenance: got %q", rec.Provenance)
	}
	if rec.PartiesSummary == "" || rec.FilingDate == "" {
		t.Errorf("placeholder record missing extracted fields: %+v", rec)
	}
}

func TestRetrieve_NotFoundIsConclusive(t *testing.T) {
	live := &fakeStrategy{name: "chromedp", result: &models.FetchResult{
		Success: false, FailureKind: models.FailureNotFound, FailureDetail: "no records found",
	}}
	placeholder := &fakeStrategy{name: "placeholder", result: &models.FetchResult{
		Success: true, RawMarkup: "<html></html>", Provenance: models.ProvenancePlaceholder,
	}}
	o, _ := newTestOrchestrator(t, live, placeholder)

	rec, err := o.Retrieve(context.Background(), testIdentity())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if placeholder.calls != 0 {
		t.Error("fallback must not run after a conclusive not-found answer")
	}
	if rec.Success {
		t.Fatalf("expected failed record, got %+v", rec)
	}
	if !strings.Contains(rec.ErrorMessage, "no records found") {
		t.Errorf("error message: %q", rec.ErrorMessage)
	}
}

func TestRetrieve_AllStrategiesFailCombinesCauses(t *testing.T) {
	first := &fakeStrategy{name: "chromedp", result: &models.FetchResult{
		Success: false, FailureKind: models.FailureTimedOut, FailureDetail: "session deadline exceeded",
	}}
	second := &fakeStrategy{name: "mirror", result: &models.FetchResult{
		Success: false, FailureKind: models.FailureTransportError, FailureDetail: "connection refused",
	}}
	o, s := newTestOrchestrator(t, first, second)

	rec, err := o.Retrieve(context.Background(), testIdentity())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if rec.Success {
		t.Fatalf("expected failure, got %+v", rec)
	}
	for _, want := range []string{"session deadline exceeded", "connection refused"} {
		if !strings.Contains(rec.ErrorMessage, want) {
			t.Errorf("error message %q missing cause %q", rec.ErrorMessage, want)
		}
	}
	if strings.Index(rec.ErrorMessage, "deadline") > strings.Index(rec.ErrorMessage, "refused") {
		t.Error("causes must appear in strategy order")
	}

	// The failed attempt still lands in the query log.
	history, herr := s.History(context.Background(), 10)
	if herr != nil {
		t.Fatal(herr)
	}
	if len(history) != 1 {
		t.Errorf("expected 1 logged attempt, got %d", len(history))
	}
}

func TestRetrieve_FailedRecordKeepsRawMarkup(t *testing.T) {
	markup := "<html><body>No Records Found</body></html>"
	live := &fakeStrategy{name: "chromedp", result: &models.FetchResult{
		Success: false, RawMarkup: markup, Provenance: models.ProvenanceLive,
		FailureKind: models.FailureNotFound, FailureDetail: "no records found",
	}}
	o, _ := newTestOrchestrator(t, live)

	rec, err := o.Retrieve(context.Background(), testIdentity())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if rec.Success {
		t.Fatalf("expected failed record, got %+v", rec)
	}
	if rec.RawMarkup != markup {
		t.Errorf("failed records must retain the result page markup, got %q", rec.RawMarkup)
	}
}

func TestRetrieve_ExhaustedChainKeepsLastMarkupAndProvenance(t *testing.T) {
	first := &fakeStrategy{name: "chromedp", result: &models.FetchResult{
		Success: false, Provenance: models.ProvenanceLive,
		FailureKind: models.FailureTimedOut, FailureDetail: "session deadline exceeded",
	}}
	markup := "<html><body>degraded</body></html>"
	second := &fakeStrategy{name: "mirror", result: &models.FetchResult{
		Success: false, RawMarkup: markup, Provenance: models.ProvenancePlaceholder,
		FailureKind: models.FailureTransportError, FailureDetail: "connection refused",
	}}
	o, _ := newTestOrchestrator(t, first, second)

	rec, err := o.Retrieve(context.Background(), testIdentity())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if rec.RawMarkup != markup {
		t.Errorf("failed record should carry the last attempt's markup, got %q", rec.RawMarkup)
	}
	if rec.Provenance != models.ProvenancePlaceholder {
		t.Errorf("failed record should carry the last attempt's provenance, got %q", rec.Provenance)
	}
}

func TestRetrieve_CacheHitSkipsStrategies(t *testing.T) {
	live := &fakeStrategy{name: "chromedp", result: &models.FetchResult{
		Success: true, RawMarkup: "<html><p>Status: Pending</p></html>", Provenance: models.ProvenanceLive,
	}}
	o, _ := newTestOrchestrator(t, live)
	ctx := context.Background()

	if _, err := o.Retrieve(ctx, testIdentity()); err != nil {
		t.Fatal(err)
	}
	if _, err := o.Retrieve(ctx, testIdentity()); err != nil {
		t.Fatal(err)
	}
	if live.calls != 1 {
		t.Errorf("second retrieve must hit the cache, strategy ran %d times", live.calls)
	}
}

func TestRetrieve_PlaceholderResultIsNeverCached(t *testing.T) {
	live := &fakeStrategy{name: "chromedp", result: &models.FetchResult{
		Success: false, FailureKind: models.FailureDriverError, FailureDetail: "chrome crashed",
	}}
	o, _ := newTestOrchestrator(t, live, NewPlaceholderStrategy())
	ctx := context.Background()

	if _, err := o.Retrieve(ctx, testIdentity()); err != nil {
		t.Fatal(err)
	}
	if _, err := o.Retrieve(ctx, testIdentity()); err != nil {
		t.Fatal(err)
	}
	if live.calls != 2 {
		t.Errorf("placeholder results must not satisfy later lookups, strategy ran %d times", live.calls)
	}
}

func TestRetrieve_ContextCancelled(t *testing.T) {
	live := &fakeStrategy{name: "chromedp", result: &models.FetchResult{Success: true, RawMarkup: "<html></html>", Provenance: models.ProvenanceLive}}
	o, _ := newTestOrchestrator(t, live)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := o.Retrieve(ctx, testIdentity()); err == nil {
		t.Error("expected context error")
	}
}

func TestPlaceholderMarkupIsDeterministic(t *testing.T) {
	s := NewPlaceholderStrategy()
	ctx := context.Background()

	a, err := s.Fetch(ctx, testIdentity())
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Fetch(ctx, testIdentity())
	if err != nil {
		t.Fatal(err)
	}
	if a.RawMarkup != b.RawMarkup {
		t.Error("placeholder markup must be identical across runs")
	}
	if a.Provenance != models.ProvenancePlaceholder {
		t.Errorf("provenance: got %q", a.Provenance)
	}
}
