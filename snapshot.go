package watchscout

import (
	"context"
	"time"
)

// Snapshot records one completed search session.
type Snapshot struct {
	ID           string    `json:"id"`
	Term         string    `json:"term"`
	AllPages     bool      `json:"allPages"`
	ListingCount int       `json:"listingCount"` // -1 when the count was not probed
	Offers       int       `json:"offers"`
	FailedPages  []int     `json:"failedPages"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.Term == "" {
		return Errorf(EINVALID, "snapshot term required")
	}
	return nil
}

// SnapshotOffer is one stored row of a snapshot.
type SnapshotOffer struct {
	SnapshotID string `json:"snapshotId"`
	Position   int    `json:"position"`
	Name       string `json:"name"`
	Price      *int64 `json:"price"`
	Data       string `json:"data"` // JSON encoding of the full row
	Hash       string `json:"hash"`
}

// SnapshotService represents a service for managing search history.
type SnapshotService interface {
	// CreateSnapshot stores the session and every row of its table.
	// ID, Offers, and CreatedAt are set on success.
	CreateSnapshot(ctx context.Context, snap *Snapshot, table *OfferTable) error

	// FindSnapshotByID retrieves a snapshot by ID.
	// Returns ENOTFOUND if snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// FindSnapshotOffers retrieves the rows of a snapshot in table order.
	// Returns ENOTFOUND if snapshot does not exist.
	FindSnapshotOffers(ctx context.Context, id string) ([]*SnapshotOffer, error)
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	Term *string `json:"term"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
