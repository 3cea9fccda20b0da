package mock

import (
	"context"

	"github.com/fwojciec/watchscout"
)

var _ watchscout.ListingCounter = (*ListingCounter)(nil)

// ListingCounter is a mock implementation of watchscout.ListingCounter.
type ListingCounter struct {
	CountListingsFn func(html string) (int, error)
}

func (c *ListingCounter) CountListings(html string) (int, error) {
	return c.CountListingsFn(html)
}

var _ watchscout.OfferExtractor = (*OfferExtractor)(nil)

// OfferExtractor is a mock implementation of watchscout.OfferExtractor.
type OfferExtractor struct {
	ExtractOffersFn func(html string) ([]watchscout.OfferEntry, error)
}

func (e *OfferExtractor) ExtractOffers(html string) ([]watchscout.OfferEntry, error) {
	return e.ExtractOffersFn(html)
}

var _ watchscout.OfferExporter = (*OfferExporter)(nil)

// OfferExporter is a mock implementation of watchscout.OfferExporter.
type OfferExporter struct {
	ExportOffersFn func(ctx context.Context, table *watchscout.OfferTable) error
}

func (e *OfferExporter) ExportOffers(ctx context.Context, table *watchscout.OfferTable) error {
	return e.ExportOffersFn(ctx, table)
}
