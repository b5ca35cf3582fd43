package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/offlist/offlist/internal/model"
)

// Browser header defaults sent with every fetch. Several brokers serve
// an empty shell page to anything that does not look like a real
// browser navigation.
const (
	defaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8"
	defaultAcceptLanguage = "en-US,en;q=0.9"
)

// Fetcher retrieves source pages over HTTP.
//
// Design decision: We use a struct with the http.Client rather than
// passing the client on each call because:
//  1. Client configuration (redirect policy, pooling) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test with a custom client against httptest servers
type Fetcher struct {
	// client performs the requests. Redirects are followed with the
	// standard 10-hop limit.
	client *http.Client

	// userAgent is sent on every request.
	userAgent string

	// maxBodySize caps how many body bytes are read.
	maxBodySize int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the default client. Used in tests and when
// the caller needs a proxy.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the response body read limit in bytes.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// NewFetcher creates a fetcher with the given defaults applied.
func NewFetcher(userAgent string, maxBodySize int64, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{},
		userAgent:   userAgent,
		maxBodySize: maxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Page is a successfully fetched source page.
type Page struct {
	// URL is the post-redirect URL that actually served the content.
	// Dedup keys on this, not on the requested URL.
	URL string

	// Body is the raw response body, capped at the configured limit.
	Body string

	// Text is the visible text extracted from Body, whitespace
	// collapsed. Scoring runs against this, not the raw markup.
	Text string
}

// FetchFailure classifies an unusable fetch. It implements error; the
// dispatcher converts it into a found=false ScanResult rather than
// propagating it.
type FetchFailure struct {
	Kind   model.FetchError
	Detail string
}

// Error implements the error interface.
func (e *FetchFailure) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Fetch retrieves one URL. Failures come back as a *FetchFailure; any
// other error kind indicates a bug in request construction.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchFailure{Kind: model.FetchFailed, Detail: truncate(err.Error())}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", defaultAccept)
	req.Header.Set("Accept-Language", defaultAcceptLanguage)
	req.Header.Set("DNT", "1")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Cache-Control", "max-age=0")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, &FetchFailure{Kind: model.FetchTimeout}
		}
		return nil, &FetchFailure{Kind: model.FetchFailed, Detail: truncate(err.Error())}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, &FetchFailure{Kind: model.FetchBlocked, Detail: "access blocked"}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &FetchFailure{Kind: model.FetchNotFound}
	case resp.StatusCode != http.StatusOK:
		return nil, &FetchFailure{
			Kind:   model.FetchHTTPError,
			Detail: fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, &FetchFailure{Kind: model.FetchTimeout}
		}
		return nil, &FetchFailure{Kind: model.FetchFailed, Detail: truncate(err.Error())}
	}

	return &Page{
		URL:  resp.Request.URL.String(),
		Body: string(body),
		Text: VisibleText(string(body)),
	}, nil
}

// isTimeout reports whether err is a network timeout.
func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// truncate bounds error details so one garbled transport error cannot
// flood logs or the database.
func truncate(s string) string {
	const max = 120
	if len(s) > max {
		return s[:max]
	}
	return s
}
