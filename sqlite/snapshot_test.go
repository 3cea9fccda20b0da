package sqlite_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/watchscout"
	"github.com/fwojciec/watchscout/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *watchscout.OfferTable {
	return &watchscout.OfferTable{
		Columns: []string{"name", "price", "priceCurrency"},
		Rows: []watchscout.Row{
			{"name": "Rolex Submariner 126610LN", "price": int64(12950), "priceCurrency": "USD"},
			{"name": "Rolex Submariner 126610LN Full Set", "price": int64(13400), "priceCurrency": "USD"},
		},
	}
}

func createTestSnapshot(t *testing.T, svc *sqlite.SnapshotService, term string) *watchscout.Snapshot {
	t.Helper()
	snap := &watchscout.Snapshot{Term: term, AllPages: true, ListingCount: 45}
	require.NoError(t, svc.CreateSnapshot(context.Background(), snap, testTable()))
	return snap
}

func TestSnapshotService_CreateSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID, timestamp and offer count", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		snap := &watchscout.Snapshot{Term: "126610LN", AllPages: true, ListingCount: 45}
		err := svc.CreateSnapshot(context.Background(), snap, testTable())

		require.NoError(t, err)
		assert.NotEmpty(t, snap.ID)
		assert.False(t, snap.CreatedAt.IsZero())
		assert.Equal(t, 2, snap.Offers)
		assert.Equal(t, []int{}, snap.FailedPages)
	})

	t.Run("returns EINVALID without a term", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		err := svc.CreateSnapshot(context.Background(), &watchscout.Snapshot{}, testTable())

		assert.Equal(t, watchscout.EINVALID, watchscout.ErrorCode(err))
	})

	t.Run("stores an empty table", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		snap := &watchscout.Snapshot{Term: "unknown ref", ListingCount: 0}

		require.NoError(t, svc.CreateSnapshot(context.Background(), snap, &watchscout.OfferTable{}))

		offers, err := svc.FindSnapshotOffers(context.Background(), snap.ID)
		require.NoError(t, err)
		assert.Empty(t, offers)
	})
}

func TestSnapshotService_FindSnapshotByID(t *testing.T) {
	t.Parallel()

	t.Run("round trips snapshot fields", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		snap := &watchscout.Snapshot{Term: "daytona", AllPages: true, ListingCount: 360, FailedPages: []int{2}}
		require.NoError(t, svc.CreateSnapshot(context.Background(), snap, testTable()))

		got, err := svc.FindSnapshotByID(context.Background(), snap.ID)

		require.NoError(t, err)
		assert.Equal(t, snap.ID, got.ID)
		assert.Equal(t, "daytona", got.Term)
		assert.True(t, got.AllPages)
		assert.Equal(t, 360, got.ListingCount)
		assert.Equal(t, 2, got.Offers)
		assert.Equal(t, []int{2}, got.FailedPages)
		assert.True(t, snap.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		_, err := svc.FindSnapshotByID(context.Background(), "missing")

		assert.Equal(t, watchscout.ENOTFOUND, watchscout.ErrorCode(err))
	})
}

func TestSnapshotService_FindSnapshots(t *testing.T) {
	t.Parallel()

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		first := createTestSnapshot(t, svc, "submariner")
		second := createTestSnapshot(t, svc, "daytona")

		got, err := svc.FindSnapshots(context.Background(), watchscout.SnapshotFilter{})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, second.ID, got[0].ID)
		assert.Equal(t, first.ID, got[1].ID)
	})

	t.Run("filters by term", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		createTestSnapshot(t, svc, "submariner")
		want := createTestSnapshot(t, svc, "daytona")

		term := "daytona"
		got, err := svc.FindSnapshots(context.Background(), watchscout.SnapshotFilter{Term: &term})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, want.ID, got[0].ID)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		var ids []string
		for _, term := range []string{"a", "b", "c", "d"} {
			ids = append(ids, createTestSnapshot(t, svc, term).ID)
		}

		limited, err := svc.FindSnapshots(context.Background(), watchscout.SnapshotFilter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, limited, 2)
		assert.Equal(t, ids[3], limited[0].ID)

		paged, err := svc.FindSnapshots(context.Background(), watchscout.SnapshotFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, paged, 2)
		assert.Equal(t, ids[1], paged[0].ID)

		skipped, err := svc.FindSnapshots(context.Background(), watchscout.SnapshotFilter{Offset: 3})
		require.NoError(t, err)
		require.Len(t, skipped, 1)
		assert.Equal(t, ids[0], skipped[0].ID)
	})
}

func TestSnapshotService_FindSnapshotOffers(t *testing.T) {
	t.Parallel()

	t.Run("returns offers in table order with fingerprints", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		snap := createTestSnapshot(t, svc, "126610LN")

		offers, err := svc.FindSnapshotOffers(context.Background(), snap.ID)

		require.NoError(t, err)
		require.Len(t, offers, 2)
		assert.Equal(t, 0, offers[0].Position)
		assert.Equal(t, "Rolex Submariner 126610LN", offers[0].Name)
		require.NotNil(t, offers[0].Price)
		assert.Equal(t, int64(12950), *offers[0].Price)
		assert.Len(t, offers[0].Hash, 16)
		assert.NotEqual(t, offers[0].Hash, offers[1].Hash)

		var data map[string]any
		require.NoError(t, json.Unmarshal([]byte(offers[1].Data), &data))
		assert.Equal(t, "USD", data["priceCurrency"])
	})

	t.Run("stores missing price as null", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		snap := &watchscout.Snapshot{Term: "5711"}
		table := &watchscout.OfferTable{
			Columns: []string{"name"},
			Rows:    []watchscout.Row{{"name": "Patek Philippe Nautilus 5711"}},
		}
		require.NoError(t, svc.CreateSnapshot(context.Background(), snap, table))

		offers, err := svc.FindSnapshotOffers(context.Background(), snap.ID)

		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Nil(t, offers[0].Price)
	})

	t.Run("identical rows share a fingerprint across snapshots", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		a := createTestSnapshot(t, svc, "126610LN")
		b := createTestSnapshot(t, svc, "126610LN")

		offersA, err := svc.FindSnapshotOffers(context.Background(), a.ID)
		require.NoError(t, err)
		offersB, err := svc.FindSnapshotOffers(context.Background(), b.ID)
		require.NoError(t, err)

		assert.Equal(t, offersA[0].Hash, offersB[0].Hash)
	})

	t.Run("returns ENOTFOUND for unknown snapshot", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		_, err := svc.FindSnapshotOffers(context.Background(), "missing")

		assert.Equal(t, watchscout.ENOTFOUND, watchscout.ErrorCode(err))
	})
}
