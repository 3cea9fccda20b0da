// Package slog provides logging decorators over log/slog for the
// watchscout service interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/watchscout"
)

// Ensure LoggingFetcher implements watchscout.Fetcher.
var _ watchscout.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   watchscout.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next watchscout.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
// Failed responses also carry their HTTP status.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if status := watchscout.ErrorStatus(err); status != 0 {
			attrs = append(attrs, "status", status)
		}
		attrs = append(attrs, "err", err)
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
