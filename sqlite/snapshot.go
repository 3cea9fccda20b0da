package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/watchscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ watchscout.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements watchscout.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// hashContent computes the xxHash of content as a hex string.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// CreateSnapshot stores snap and every row of table in one transaction.
// ID, CreatedAt and Offers are assigned from the stored data.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *watchscout.Snapshot, table *watchscout.OfferTable) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	failed, err := json.Marshal(nonNilPages(snap.FailedPages))
	if err != nil {
		return fmt.Errorf("failed to encode failed pages: %w", err)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New().String()
	createdAt := time.Now().UTC()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, term, all_pages, listing_count, offers, failed_pages, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, snap.Term, snap.AllPages, snap.ListingCount, table.Len(), string(failed),
		formatTimestamp(createdAt)); err != nil {
		return err
	}

	if table != nil {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO snapshot_offers (snapshot_id, position, name, price, data, hash)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, row := range table.Rows {
			data, err := json.Marshal(row)
			if err != nil {
				return fmt.Errorf("failed to encode offer %d: %w", i, err)
			}
			var price sql.NullInt64
			if p, ok := row.Price(); ok {
				price = sql.NullInt64{Int64: p, Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, id, i, row.Name(), price, string(data), hashContent(string(data))); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	snap.ID = id
	snap.CreatedAt = createdAt
	snap.Offers = table.Len()
	snap.FailedPages = nonNilPages(snap.FailedPages)
	return nil
}

// FindSnapshotByID retrieves a snapshot by ID.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*watchscout.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, term, all_pages, listing_count, offers, failed_pages, created_at
		FROM snapshots
		WHERE id = ?
	`, id)

	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, watchscout.Errorf(watchscout.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter watchscout.SnapshotFilter) ([]*watchscout.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, term, all_pages, listing_count, offers, failed_pages, created_at FROM snapshots WHERE 1=1")

	if filter.Term != nil {
		query.WriteString(" AND term = ?")
		args = append(args, *filter.Term)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	clause, limitArgs := limitClause(filter.Limit, filter.Offset)
	query.WriteString(clause)
	args = append(args, limitArgs...)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*watchscout.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}

	return snaps, rows.Err()
}

// FindSnapshotOffers retrieves the offers stored with a snapshot, in table order.
func (s *SnapshotService) FindSnapshotOffers(ctx context.Context, id string) ([]*watchscout.SnapshotOffer, error) {
	if _, err := s.FindSnapshotByID(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT snapshot_id, position, name, price, data, hash
		FROM snapshot_offers
		WHERE snapshot_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := []*watchscout.SnapshotOffer{}
	for rows.Next() {
		var o watchscout.SnapshotOffer
		var price sql.NullInt64
		if err := rows.Scan(&o.SnapshotID, &o.Position, &o.Name, &price, &o.Data, &o.Hash); err != nil {
			return nil, err
		}
		if price.Valid {
			p := price.Int64
			o.Price = &p
		}
		offers = append(offers, &o)
	}

	return offers, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*watchscout.Snapshot, error) {
	var snap watchscout.Snapshot
	var failed, createdAt string

	if err := row.Scan(&snap.ID, &snap.Term, &snap.AllPages, &snap.ListingCount,
		&snap.Offers, &failed, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(failed), &snap.FailedPages); err != nil {
		return nil, fmt.Errorf("failed to parse failed_pages: %w", err)
	}

	var err error
	snap.CreatedAt, err = parseTimestamp(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func nonNilPages(pages []int) []int {
	if pages == nil {
		return []int{}
	}
	return pages
}
