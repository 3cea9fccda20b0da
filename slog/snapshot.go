package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/watchscout"
)

var _ watchscout.SnapshotService = (*LoggingSnapshotService)(nil)

// LoggingSnapshotService wraps a SnapshotService, logging writes.
// Reads are delegated without logging.
type LoggingSnapshotService struct {
	next   watchscout.SnapshotService
	logger *slog.Logger
}

// NewLoggingSnapshotService creates a new LoggingSnapshotService.
func NewLoggingSnapshotService(next watchscout.SnapshotService, logger *slog.Logger) *LoggingSnapshotService {
	return &LoggingSnapshotService{next: next, logger: logger}
}

// CreateSnapshot delegates to the wrapped service and logs the operation.
func (s *LoggingSnapshotService) CreateSnapshot(ctx context.Context, snap *watchscout.Snapshot, table *watchscout.OfferTable) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("snapshot save",
			"id", snap.ID,
			"term", snap.Term,
			"rows", table.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSnapshot(ctx, snap, table)
}

func (s *LoggingSnapshotService) FindSnapshotByID(ctx context.Context, id string) (*watchscout.Snapshot, error) {
	return s.next.FindSnapshotByID(ctx, id)
}

func (s *LoggingSnapshotService) FindSnapshots(ctx context.Context, filter watchscout.SnapshotFilter) ([]*watchscout.Snapshot, error) {
	return s.next.FindSnapshots(ctx, filter)
}

func (s *LoggingSnapshotService) FindSnapshotOffers(ctx context.Context, id string) ([]*watchscout.SnapshotOffer, error) {
	return s.next.FindSnapshotOffers(ctx, id)
}
