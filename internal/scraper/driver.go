// internal/scraper/driver.go
package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/courtdata/internal/ratelimit"
	"github.com/law-makers/courtdata/pkg/models"
)

// initialRenderDelay lets the search page's scripts build the form before the
// driver starts probing for fields.
const initialRenderDelay = 2 * time.Second

// fillFieldScript probes an ordered list of name/id candidates, fills the
// first control found, and returns the candidate that matched. Select
// controls are matched by case-insensitive substring against option labels;
// everything else gets the value typed directly.
const fillFieldScript = `(function(names, value) {
	for (const name of names) {
		const el = document.querySelector('[name="' + name + '"]') || document.getElementById(name);
		if (!el) continue;
		if (el.tagName === 'SELECT') {
			const want = value.toLowerCase();
			for (const opt of el.options) {
				if (opt.text.toLowerCase().indexOf(want) !== -1) {
					el.value = opt.value;
					el.dispatchEvent(new Event('change', { bubbles: true }));
					return name;
				}
			}
		}
		el.value = value;
		el.dispatchEvent(new Event(el.tagName === 'SELECT' ? 'change' : 'input', { bubbles: true }));
		return name;
	}
	return '';
})(%s, %s)`

// detectChallengeScript looks for elements whose identifying attributes carry
// a CAPTCHA-like marker. Detection only; the driver never attempts to solve.
const detectChallengeScript = `document.querySelector('[src*="captcha" i], [id*="captcha" i], [name*="captcha" i]') !== null`

// submitScript clicks the first submit control from an ordered candidate
// list and returns the selector that matched.
const submitScript = `(function() {
	const candidates = ['[name="submit"]', 'input[value="Search" i]', 'input[type="submit"]', 'button[type="submit"]'];
	for (const sel of candidates) {
		const el = document.querySelector(sel);
		if (el) { el.click(); return sel; }
	}
	return '';
})()`

// Options configures a Driver session.
type Options struct {
	// SearchURL is the court site's case-status search page.
	SearchURL string
	// SessionTimeout bounds the whole search attempt, settle delay included.
	SessionTimeout time.Duration
	// SettleDelay is the fixed post-submission wait before reading markup.
	// The site offers no reliable completion signal to poll for.
	SettleDelay time.Duration
	UserAgent   string
	Headless    bool
	ChromePath  string
	Proxy       string
}

// Driver runs a scripted headless-Chrome session against the court site's
// search form. Each Search call owns its browser context exclusively and
// releases it on every exit path.
type Driver struct {
	opts    Options
	limiter ratelimit.RateLimiter
}

// New creates a Driver. The limiter may be nil in tests.
func New(opts Options, limiter ratelimit.RateLimiter) *Driver {
	if opts.SessionTimeout == 0 {
		opts.SessionTimeout = 60 * time.Second
	}
	if opts.SettleDelay == 0 {
		opts.SettleDelay = 3 * time.Second
	}
	return &Driver{opts: opts, limiter: limiter}
}

// Name returns the name of this fetch path.
func (d *Driver) Name() string {
	return "DynamicDriver"
}

// Search drives one session:
// navigate, locate and fill fields, detect challenge, submit, settle, classify.
// The returned FetchResult is never nil; a non-nil error accompanies
// session-level failures (TimedOut, DriverError) for the caller to log.
func (d *Driver) Search(ctx context.Context, identity models.CaseIdentity) (*models.FetchResult, error) {
	start := time.Now()
	res := &models.FetchResult{Provenance: models.ProvenanceLive}

	log.Debug().
		Str("case_type", identity.CaseType).
		Str("case_number", identity.CaseNumber).
		Int("filing_year", identity.FilingYear).
		Msg("Starting search session")

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx, d.opts.SearchURL); err != nil {
			return d.fail(res, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, d.opts.SessionTimeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, d.allocatorOptions()...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var located []string
	if err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.Navigate(d.opts.SearchURL),
		settle(initialRenderDelay),
		d.fillFields(identity, &located),
	); err != nil {
		return d.fail(res, fmt.Errorf("navigate search page: %w", err))
	}

	log.Debug().
		Strs("fields_located", located).
		Dur("elapsed", time.Since(start)).
		Msg("Search form filled")

	var challenge bool
	if err := chromedp.Run(browserCtx, chromedp.Evaluate(detectChallengeScript, &challenge)); err != nil {
		return d.fail(res, fmt.Errorf("challenge detection: %w", err))
	}
	if challenge {
		log.Warn().Str("url", d.opts.SearchURL).Msg("Automation challenge detected, submitting anyway")
	}

	var submitControl string
	if err := chromedp.Run(browserCtx, chromedp.Evaluate(submitScript, &submitControl)); err != nil {
		return d.fail(res, fmt.Errorf("submit: %w", err))
	}
	if submitControl == "" {
		res.FailureKind = models.FailureDriverError
		res.FailureDetail = "could not find search button on the page"
		return res, errors.New(res.FailureDetail)
	}

	var markup string
	if err := chromedp.Run(browserCtx,
		settle(d.opts.SettleDelay),
		chromedp.OuterHTML("html", &markup, chromedp.ByQuery),
	); err != nil {
		return d.fail(res, fmt.Errorf("read result page: %w", err))
	}
	res.RawMarkup = markup

	class := Classify(markup, challenge)
	log.Info().
		Str("classification", string(class)).
		Bool("challenge", challenge).
		Dur("elapsed", time.Since(start)).
		Msg("Search session completed")

	switch class {
	case ClassFound:
		res.Success = true
	case ClassNotFound:
		res.FailureKind = models.FailureNotFound
		res.FailureDetail = "case not found in court records"
	case ClassChallenge:
		res.FailureKind = models.FailureChallengePresented
		res.FailureDetail = "automation challenge blocked the search; no case details returned"
	default:
		res.FailureKind = models.FailureAmbiguous
		res.FailureDetail = "search form submitted but no case details found"
	}
	return res, nil
}

// fail classifies a session-level error and fills the result accordingly.
func (d *Driver) fail(res *models.FetchResult, err error) (*models.FetchResult, error) {
	if errors.Is(err, context.DeadlineExceeded) {
		res.FailureKind = models.FailureTimedOut
		res.FailureDetail = "page did not respond within the session timeout - court website may be down"
	} else {
		res.FailureKind = models.FailureDriverError
		res.FailureDetail = err.Error()
	}
	return res, err
}

// fillFields fills each logical search field from its candidate list. A field
// with no matching control is skipped; the site's field names vary between
// revisions and a partial form still produces a classifiable result page.
func (d *Driver) fillFields(identity models.CaseIdentity, located *[]string) chromedp.Action {
	fields := []struct {
		logical string
		names   []string
		value   string
	}{
		{"case_type", []string{"case_type", "casetype"}, identity.CaseType},
		{"case_number", []string{"case_no", "caseno", "case_number"}, identity.CaseNumber},
		{"filing_year", []string{"case_year", "year"}, strconv.Itoa(identity.FilingYear)},
	}

	return chromedp.ActionFunc(func(ctx context.Context) error {
		for _, f := range fields {
			names, _ := json.Marshal(f.names)
			value, _ := json.Marshal(f.value)

			var matched string
			expr := fmt.Sprintf(fillFieldScript, names, value)
			if err := chromedp.Evaluate(expr, &matched).Do(ctx); err != nil {
				return fmt.Errorf("fill %s: %w", f.logical, err)
			}
			if matched == "" {
				log.Debug().Str("field", f.logical).Msg("No candidate control found, continuing")
				continue
			}
			*located = append(*located, f.logical)
		}
		return nil
	})
}

func (d *Driver) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", d.opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(d.opts.UserAgent),
	}

	if path := findChrome(d.opts.ChromePath); path != "" {
		opts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(path)}, opts...)
	}
	if d.opts.Proxy != "" {
		opts = append(opts, chromedp.ProxyServer(d.opts.Proxy))
	}
	return opts
}

// settle waits a fixed interval while still honoring context cancellation.
func settle(d time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		select {
		case <-time.After(d):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}
