// Package search runs search sessions: it fetches result pages in order,
// resolves the listing count, and normalizes the offers into a table.
package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/watchscout"
	"golang.org/x/sync/errgroup"
)

// Aggregator drives one search session per Aggregate call.
// The zero values of the optional fields select sequential, fail-fast
// aggregation with the default page size and probe retry budget.
type Aggregator struct {
	Requests  watchscout.RequestBuilder
	Fetcher   watchscout.Fetcher
	Counter   watchscout.ListingCounter
	Extractor watchscout.OfferExtractor

	RateLimiter watchscout.DomainLimiter
	Logger      *slog.Logger

	PageSize    int
	ProbeDelays []time.Duration

	// Concurrency is the number of pages after the first that may be
	// fetched at once. Values below 2 fetch sequentially.
	Concurrency int

	// Partial records failures on pages after the first instead of
	// aborting, and builds the table from the pages that succeeded.
	Partial bool

	Progress ProgressFunc
}

// Result is the outcome of a search session.
type Result struct {
	Table *watchscout.OfferTable

	// ListingCount is -1 when only the first page was requested.
	ListingCount int

	// Pages is the page sequence derived from the listing count, or [1]
	// when only the first page was requested.
	Pages []int

	// Failed lists the pages skipped in partial mode, in page order.
	Failed []*watchscout.PageError
}

// FailedPages returns the page numbers of Failed.
func (r *Result) FailedPages() []int {
	pages := make([]int, 0, len(r.Failed))
	for _, f := range r.Failed {
		pages = append(pages, f.Page)
	}
	return pages
}

// PageProgress reports one processed page.
type PageProgress struct {
	Page      int
	Completed int
	Total     int
	Offers    int
	Err       error
}

// ProgressFunc is called after each page is processed.
type ProgressFunc func(PageProgress)

// pageResult holds the outcome of fetching and extracting one page.
type pageResult struct {
	page    int
	entries []watchscout.OfferEntry
	err     error
}

// Aggregate searches for term and returns the normalized offers.
// Without allPages only the first page is fetched. With allPages the
// listing count is probed on the first page and every remaining page is
// fetched. A zero listing count is a valid, empty outcome.
func (a *Aggregator) Aggregate(ctx context.Context, term string, allPages bool) (*Result, error) {
	q := watchscout.NewSearchQuery(term)
	if a.PageSize != 0 {
		q.PageSize = a.PageSize
	}

	first, err := a.Requests.Build(q)
	if err != nil {
		return nil, err
	}

	html, err := fetch(ctx, a.Fetcher, a.RateLimiter, first)
	if err != nil {
		return nil, &watchscout.PageError{Page: 1, Err: err}
	}
	entries, err := a.Extractor.ExtractOffers(html)
	if err != nil {
		return nil, &watchscout.PageError{Page: 1, Err: err}
	}

	result := &Result{ListingCount: -1, Pages: []int{1}}
	collected := [][]watchscout.OfferEntry{entries}

	if !allPages {
		a.report(PageProgress{Page: 1, Completed: 1, Total: 1, Offers: len(entries)})
		result.Table = watchscout.NewOfferTable(collected)
		return result, nil
	}

	prober := &Prober{
		Fetcher:     a.Fetcher,
		Counter:     a.Counter,
		RateLimiter: a.RateLimiter,
		Delays:      a.ProbeDelays,
		Logger:      a.Logger,
	}
	count, err := prober.Probe(ctx, first, html)
	if err != nil {
		return nil, &watchscout.PageError{Page: 1, Err: err}
	}
	pages, err := watchscout.Pages(count, q.PageSize)
	if err != nil {
		return nil, err
	}
	result.ListingCount = count
	result.Pages = pages

	total := max(len(pages), 1)
	a.report(PageProgress{Page: 1, Completed: 1, Total: total, Offers: len(entries)})

	if len(pages) > 1 {
		results, err := a.fetchRemaining(ctx, q, pages[1:], total)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			if r.err != nil {
				result.Failed = append(result.Failed, &watchscout.PageError{Page: r.page, Err: r.err})
				continue
			}
			collected = append(collected, r.entries)
		}
	}

	result.Table = watchscout.NewOfferTable(collected)
	return result, nil
}

// fetchRemaining fetches pages and returns their results in page order.
// Outside partial mode the first failure aborts with a PageError.
func (a *Aggregator) fetchRemaining(ctx context.Context, q watchscout.SearchQuery, pages []int, total int) ([]pageResult, error) {
	results := make([]pageResult, len(pages))

	var (
		mu        sync.Mutex
		completed = 1
	)
	done := func(r pageResult) {
		mu.Lock()
		defer mu.Unlock()
		completed++
		a.report(PageProgress{
			Page:      r.page,
			Completed: completed,
			Total:     total,
			Offers:    len(r.entries),
			Err:       r.err,
		})
	}

	if a.Concurrency < 2 {
		for i, page := range pages {
			r := a.processPage(ctx, q, page)
			done(r)
			if r.err != nil && !a.Partial {
				return nil, &watchscout.PageError{Page: page, Err: r.err}
			}
			results[i] = r
		}
		return results, ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Concurrency)
	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			r := a.processPage(gctx, q, page)
			results[i] = r
			done(r)
			if r.err != nil && !a.Partial {
				return &watchscout.PageError{Page: page, Err: r.err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, ctx.Err()
}

// processPage fetches and extracts a single page with its own query value.
func (a *Aggregator) processPage(ctx context.Context, q watchscout.SearchQuery, page int) pageResult {
	result := pageResult{page: page}

	req, err := a.Requests.Build(q.WithPage(page))
	if err != nil {
		result.err = err
		return result
	}

	html, err := fetch(ctx, a.Fetcher, a.RateLimiter, req)
	if err != nil {
		result.err = err
		return result
	}

	result.entries, result.err = a.Extractor.ExtractOffers(html)
	return result
}

func (a *Aggregator) report(p PageProgress) {
	if a.Progress != nil {
		a.Progress(p)
	}
}
