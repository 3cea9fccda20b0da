package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/watchscout"
	"github.com/fwojciec/watchscout/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateSnapshot measures saving a full multi-page session.
func BenchmarkCreateSnapshot(b *testing.B) {
	for _, rows := range []int{120, 1200} {
		b.Run(fmt.Sprintf("rows_%d", rows), func(b *testing.B) {
			benchmarkCreateSnapshot(b, rows)
		})
	}
}

func benchmarkCreateSnapshot(b *testing.B, rows int) {
	b.Helper()

	dbPath := filepath.Join(b.TempDir(), "bench.db")
	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())
	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	table := &watchscout.OfferTable{Columns: []string{"name", "price", "seller.name"}}
	for i := 0; i < rows; i++ {
		table.Rows = append(table.Rows, watchscout.Row{
			"name":        fmt.Sprintf("Rolex Submariner Date 126610LN #%d", i),
			"price":       int64(12000 + i),
			"seller.name": fmt.Sprintf("Dealer %d", i%17),
		})
	}

	svc := sqlite.NewSnapshotService(db)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		snap := &watchscout.Snapshot{Term: "126610LN", AllPages: true, ListingCount: rows}
		if err := svc.CreateSnapshot(ctx, snap, table); err != nil {
			b.Fatal(err)
		}
	}
}
