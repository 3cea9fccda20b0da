package watchscout

import "context"

// Fetcher retrieves page content from URLs.
// Implementations may issue plain HTTP requests or drive a browser.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// Returns EFETCH when the upstream response is not a success status.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
