package search

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/watchscout"
	"golang.org/x/time/rate"
)

var _ watchscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests with one token bucket per host.
// Page fetches and listing count re-fetches against the marketplace share
// a bucket; other hosts are unaffected.
type DomainLimiter struct {
	limit rate.Limit
	burst int

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithBurst allows n requests to a host back to back before limiting.
// Defaults to 1.
func WithBurst(n int) LimiterOption {
	return func(d *DomainLimiter) {
		if n > 0 {
			d.burst = n
		}
	}
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second per host.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		limit: rate.Limit(rps),
		burst: 1,
		hosts: make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until a request to domain is allowed or ctx is done.
// Host names are compared case-insensitively.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.bucket(strings.ToLower(domain)).Wait(ctx)
}

func (d *DomainLimiter) bucket(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(d.limit, d.burst)
		d.hosts[host] = l
	}
	return l
}
