package watchscout

import "context"

// OfferExporter writes an offer table to an external destination.
type OfferExporter interface {
	// ExportOffers writes one record per row with the name and price columns.
	ExportOffers(ctx context.Context, table *OfferTable) error
}
