package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/watchscout"
	"github.com/fwojciec/watchscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferExporter_ExportOffers(t *testing.T) {
	t.Parallel()

	t.Run("delegates to ExportOffersFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *watchscout.OfferTable
		e := &mock.OfferExporter{
			ExportOffersFn: func(_ context.Context, table *watchscout.OfferTable) error {
				calledWith = table
				return nil
			},
		}

		table := &watchscout.OfferTable{
			Columns: []string{"name", "price"},
			Rows:    []watchscout.Row{{"name": "Submariner", "price": int64(12000)}},
		}

		err := e.ExportOffers(context.Background(), table)

		require.NoError(t, err)
		assert.Same(t, table, calledWith)
	})
}
