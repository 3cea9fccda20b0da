package watchscout

// Well-known offer fields.
const (
	FieldName  = "name"
	FieldPrice = "price"
)

// Offer is one seller listing as published in a page's structured data.
// Fields beyond name and price are passed through unvalidated.
// Numbers are kept as json.Number until normalization.
type Offer map[string]any

// OfferEntry is one element of a page's offers collection. Pages publish
// either single records or nested sequences of records; exactly one of
// Offer and Batch is set.
type OfferEntry struct {
	Offer Offer
	Batch []Offer
}

// SingleOffer returns an entry holding one record.
func SingleOffer(o Offer) OfferEntry {
	return OfferEntry{Offer: o}
}

// OfferBatch returns an entry holding a nested sequence of records.
func OfferBatch(offers ...Offer) OfferEntry {
	return OfferEntry{Batch: offers}
}

// IsBatch reports whether the entry is a nested sequence.
func (e OfferEntry) IsBatch() bool {
	return e.Offer == nil && e.Batch != nil
}

// FlattenOffers splices batches into the surrounding sequence, one level
// deep, preserving page order.
func FlattenOffers(pages [][]OfferEntry) []Offer {
	var offers []Offer
	for _, entries := range pages {
		for _, e := range entries {
			if e.IsBatch() {
				offers = append(offers, e.Batch...)
				continue
			}
			if e.Offer != nil {
				offers = append(offers, e.Offer)
			}
		}
	}
	return offers
}

// ListingCounter reads the total listing count from a result page.
type ListingCounter interface {
	// CountListings returns the number of listings the page reports.
	// Returns ENOTFOUND when the page carries no count marker.
	CountListings(html string) (int, error)
}

// OfferExtractor reads the offers embedded in a result page.
type OfferExtractor interface {
	// ExtractOffers returns the page's offers, possibly empty.
	// Returns EMALFORMED when the structured data is missing or unparseable.
	ExtractOffers(html string) ([]OfferEntry, error)
}
