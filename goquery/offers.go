package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/watchscout"
)

// Ensure OfferExtractor implements watchscout.OfferExtractor at compile time.
var _ watchscout.OfferExtractor = (*OfferExtractor)(nil)

// OfferExtractor reads offers from a page's application/ld+json blocks.
type OfferExtractor struct{}

// NewOfferExtractor creates a new OfferExtractor.
func NewOfferExtractor() *OfferExtractor {
	return &OfferExtractor{}
}

// ExtractOffers returns the offers of the first structured-data node that
// carries an "offers" key. Blocks that fail to decode are skipped only when
// a later block carries the offers. Without offers, a page whose blocks all
// decode yields no entries and any undecodable block is EMALFORMED.
func (e *OfferExtractor) ExtractOffers(html string) ([]watchscout.OfferEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, watchscout.Errorf(watchscout.EMALFORMED, "failed to parse HTML: %v", err)
	}

	scripts := doc.Find(`script[type="application/ld+json"]`)
	if scripts.Length() == 0 {
		return nil, watchscout.Errorf(watchscout.EMALFORMED, "no structured data block found")
	}

	var (
		parseErr error
		offers   any
		found    bool
	)
	scripts.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		v, err := decode(sel.Text())
		if err != nil {
			if parseErr == nil {
				parseErr = err
			}
			return true
		}
		offers, found = findOffers(v)
		return !found
	})

	if found {
		return toEntries(offers), nil
	}
	if parseErr != nil {
		return nil, watchscout.Errorf(watchscout.EMALFORMED, "invalid structured data: %v", parseErr)
	}
	return []watchscout.OfferEntry{}, nil
}

func decode(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// findOffers walks the document root and its @graph for the first node
// with an "offers" key. Other nested objects are not searched.
func findOffers(v any) (any, bool) {
	switch v := v.(type) {
	case map[string]any:
		if offers, ok := v["offers"]; ok {
			return offers, true
		}
		if graph, ok := v["@graph"]; ok {
			return findOffers(graph)
		}
	case []any:
		for _, item := range v {
			if offers, ok := findOffers(item); ok {
				return offers, true
			}
		}
	}
	return nil, false
}

func toEntries(v any) []watchscout.OfferEntry {
	entries := []watchscout.OfferEntry{}
	switch v := v.(type) {
	case []any:
		for _, item := range v {
			switch item := item.(type) {
			case map[string]any:
				entries = append(entries, watchscout.SingleOffer(watchscout.Offer(item)))
			case []any:
				batch := make([]watchscout.Offer, 0, len(item))
				for _, inner := range item {
					if m, ok := inner.(map[string]any); ok {
						batch = append(batch, watchscout.Offer(m))
					}
				}
				entries = append(entries, watchscout.OfferBatch(batch...))
			}
		}
	case map[string]any:
		if t, _ := v["@type"].(string); t == "AggregateOffer" {
			if inner, ok := v["offers"]; ok {
				return toEntries(inner)
			}
		}
		entries = append(entries, watchscout.SingleOffer(watchscout.Offer(v)))
	}
	return entries
}
