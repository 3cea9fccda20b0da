package mock

import (
	"context"

	"github.com/fwojciec/watchscout"
)

var _ watchscout.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of watchscout.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn     func(ctx context.Context, snap *watchscout.Snapshot, table *watchscout.OfferTable) error
	FindSnapshotByIDFn   func(ctx context.Context, id string) (*watchscout.Snapshot, error)
	FindSnapshotsFn      func(ctx context.Context, filter watchscout.SnapshotFilter) ([]*watchscout.Snapshot, error)
	FindSnapshotOffersFn func(ctx context.Context, id string) ([]*watchscout.SnapshotOffer, error)
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *watchscout.Snapshot, table *watchscout.OfferTable) error {
	return s.CreateSnapshotFn(ctx, snap, table)
}

func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*watchscout.Snapshot, error) {
	return s.FindSnapshotByIDFn(ctx, id)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter watchscout.SnapshotFilter) ([]*watchscout.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) FindSnapshotOffers(ctx context.Context, id string) ([]*watchscout.SnapshotOffer, error) {
	return s.FindSnapshotOffersFn(ctx, id)
}
