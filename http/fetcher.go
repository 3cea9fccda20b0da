// Package http provides an HTTP-based implementation of watchscout.Fetcher
// for result pages that embed their structured data server-side.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/watchscout"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultHeaders are sent with every request unless overridden.
// The marketplace serves a reduced page to clients without browser headers.
var DefaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_14_6) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/99.0.4844.84 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Charset":  "ISO-8859-1,utf-8;q=0.7,*;q=0.3",
	"Accept-Language": "en-US,en;q=0.8",
	"Connection":      "keep-alive",
	"Referer":         "https://www.chrono24.com",
}

// Ensure Fetcher implements watchscout.Fetcher at compile time.
var _ watchscout.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	headers map[string]string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHeaders sets additional request headers, overriding defaults with the same name.
// A cookie captured from a browser session can be passed as the "Cookie" header.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		for k, v := range headers {
			f.headers[k] = v
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		headers: make(map[string]string, len(DefaultHeaders)),
	}
	for k, v := range DefaultHeaders {
		f.headers[k] = v
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Returns EFETCH with the response status for non-2xx responses, and EFETCH
// without a status when the transport fails. Cancellation of ctx is returned
// as the context error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", watchscout.Errorf(watchscout.EINVALID, "invalid request URL: %v", err)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", transportError(ctx, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", watchscout.FetchFailed(resp.StatusCode, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(ctx, url, err)
	}

	return string(body), nil
}

// transportError keeps the caller's context error intact and reports
// everything else, client timeouts included, as a failed fetch.
func transportError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return watchscout.FetchFailed(0, "fetching %s: %v", url, err)
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
