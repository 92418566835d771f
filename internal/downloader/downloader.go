// internal/downloader/downloader.go
package downloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/law-makers/courtdata/internal/ratelimit"
	"github.com/law-makers/courtdata/internal/retry"
	"github.com/law-makers/courtdata/internal/urlutil"
)

var (
	// ErrContentTypeMismatch means the server answered with something that
	// is not a court document, typically an HTML error or challenge page.
	ErrContentTypeMismatch = errors.New("response is not a document")

	// ErrInvalidDocument means the payload claimed to be a PDF but failed
	// structural validation.
	ErrInvalidDocument = errors.New("document failed PDF validation")

	// ErrEmptyDocument means the server returned a zero-byte body.
	ErrEmptyDocument = errors.New("document is empty")
)

// DefaultTimeout bounds a single document fetch end to end.
const DefaultTimeout = 30 * time.Second

// DocumentResult is one fetched court document held in memory.
type DocumentResult struct {
	Bytes       []byte
	Size        int64
	Filename    string
	ContentType string
}

// Downloader fetches court documents over plain HTTP. Document URLs are
// static file endpoints, so no browser session is needed here; the rate
// limiter is shared with the scraper to keep total pressure on the site
// within one budget.
type Downloader struct {
	client    *http.Client
	limiter   ratelimit.RateLimiter
	retryCfg  retry.Config
	timeout   time.Duration
	userAgent string

	// ShowProgress renders a byte progress bar during the body read.
	ShowProgress bool
}

// New creates a Downloader. A zero timeout gets DefaultTimeout.
func New(limiter ratelimit.RateLimiter, timeout time.Duration, userAgent string) *Downloader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Downloader{
		client:    &http.Client{Timeout: timeout},
		limiter:   limiter,
		retryCfg:  retry.DefaultConfig(),
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// FetchDocument downloads the document at urlStr, retrying transient
// failures. HTML answers for URLs that do not name a PDF are rejected, and
// PDF payloads are structurally validated before being returned.
func (d *Downloader) FetchDocument(ctx context.Context, urlStr string) (*DocumentResult, error) {
	if err := urlutil.Validate(urlStr); err != nil {
		return nil, fmt.Errorf("invalid document URL: %w", err)
	}
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx, urlStr); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var (
		payload     []byte
		contentType string
	)
	err := retry.Do(ctx, d.retryCfg, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
		if err != nil {
			return err
		}
		if d.userAgent != "" {
			req.Header.Set("User-Agent", d.userAgent)
		}

		resp, err := d.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return retry.HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
		}

		contentType = resp.Header.Get("Content-Type")
		payload, err = d.readBody(resp)
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(payload) == 0 {
		return nil, ErrEmptyDocument
	}
	if !acceptable(urlStr, contentType) {
		return nil, fmt.Errorf("%w: content type %q for %s", ErrContentTypeMismatch, contentType, urlStr)
	}
	if looksLikePDF(urlStr, contentType) {
		if err := api.Validate(bytes.NewReader(payload), nil); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	}

	res := &DocumentResult{
		Bytes:       payload,
		Size:        int64(len(payload)),
		Filename:    filenameFor(urlStr),
		ContentType: contentType,
	}
	log.Info().
		Str("url", urlStr).
		Int64("size", res.Size).
		Str("filename", res.Filename).
		Msg("Document downloaded")
	return res, nil
}

// Save writes the document into dir, creating it as needed, and returns
// the full path written.
func (d *Downloader) Save(dir string, res *DocumentResult) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}
	dest := filepath.Join(dir, res.Filename)
	if err := os.WriteFile(dest, res.Bytes, 0o644); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}
	return dest, nil
}

func (d *Downloader) readBody(resp *http.Response) ([]byte, error) {
	var buf bytes.Buffer
	var w io.Writer = &buf

	if d.ShowProgress && resp.ContentLength > 0 {
		bar := progressbar.DefaultBytes(resp.ContentLength, "downloading")
		w = io.MultiWriter(&buf, bar)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// acceptable decides whether the response can be a court document. A URL
// that names a PDF is trusted even when the server mislabels the type;
// anything else must carry a document-ish content type.
func acceptable(urlStr, contentType string) bool {
	if hasPDFPath(urlStr) {
		return true
	}
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf"):
		return true
	case strings.Contains(ct, "octet-stream"):
		return true
	case strings.Contains(ct, "msword"), strings.Contains(ct, "officedocument"):
		return true
	}
	return false
}

func looksLikePDF(urlStr, contentType string) bool {
	return hasPDFPath(urlStr) || strings.Contains(strings.ToLower(contentType), "pdf")
}

func hasPDFPath(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".pdf")
}

// filenameFor derives a local filename. URLs ending in .pdf keep their last
// path segment; everything else gets a timestamped generic name.
func filenameFor(urlStr string) string {
	if u, err := url.Parse(urlStr); err == nil {
		base := path.Base(u.Path)
		if strings.HasSuffix(strings.ToLower(base), ".pdf") && base != "." && base != "/" {
			return base
		}
	}
	return fmt.Sprintf("court_document_%d.pdf", time.Now().Unix())
}
