package search

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/watchscout"
)

// Prober resolves the total listing count for a search, re-fetching the
// page while the count marker is missing. Sites render the marker
// inconsistently, so a missing marker is retried up to len(Delays) times.
type Prober struct {
	Fetcher     watchscout.Fetcher
	Counter     watchscout.ListingCounter
	RateLimiter watchscout.DomainLimiter
	Delays      []time.Duration
	Logger      *slog.Logger
}

// Probe returns the listing count from html, the content already fetched
// for req. Returns ELISTINGCOUNT once the retry budget is spent. Fetch
// failures during a re-fetch are returned unchanged.
func (p *Prober) Probe(ctx context.Context, req *watchscout.SearchRequest, html string) (int, error) {
	delays := p.Delays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	for attempt := 0; ; attempt++ {
		n, err := p.Counter.CountListings(html)
		if err == nil {
			return n, nil
		}
		if watchscout.ErrorCode(err) != watchscout.ENOTFOUND {
			return 0, err
		}

		if attempt >= len(delays) {
			return 0, watchscout.Errorf(watchscout.ELISTINGCOUNT,
				"listing count for %q not found after %d attempts", req.Query.Term, attempt+1)
		}

		if p.Logger != nil {
			p.Logger.Warn("listing count missing, re-fetching",
				"url", req.URL,
				"attempt", attempt+2,
				"delay", delays[attempt],
			)
		}
		if err := sleep(ctx, delays[attempt]); err != nil {
			return 0, err
		}

		html, err = fetch(ctx, p.Fetcher, p.RateLimiter, req)
		if err != nil {
			return 0, err
		}
	}
}

// fetch waits for the host's rate limit, if any, then fetches req.
func fetch(ctx context.Context, f watchscout.Fetcher, limiter watchscout.DomainLimiter, req *watchscout.SearchRequest) (string, error) {
	if limiter != nil {
		u, err := url.Parse(req.URL)
		if err != nil {
			return "", watchscout.Errorf(watchscout.EINVALID, "invalid request URL: %v", err)
		}
		if err := limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	return f.Fetch(ctx, req.URL)
}
