package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/watchscout"
)

var _ watchscout.OfferExporter = (*LoggingExporter)(nil)

// LoggingExporter wraps an OfferExporter with logging.
type LoggingExporter struct {
	next   watchscout.OfferExporter
	logger *slog.Logger
}

// NewLoggingExporter creates a new LoggingExporter.
func NewLoggingExporter(next watchscout.OfferExporter, logger *slog.Logger) *LoggingExporter {
	return &LoggingExporter{next: next, logger: logger}
}

// ExportOffers delegates to the wrapped exporter and logs the operation.
func (e *LoggingExporter) ExportOffers(ctx context.Context, table *watchscout.OfferTable) (err error) {
	defer func(begin time.Time) {
		e.logger.Info("export",
			"rows", table.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExportOffers(ctx, table)
}
