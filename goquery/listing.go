// Package goquery reads listing counts and embedded offers from marketplace
// result pages using goquery.
package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/watchscout"
)

// listingsRe matches a count immediately followed by the word "listings",
// e.g. "1,234 listings" or "1 234 listings". Separators must split the
// number into groups of three digits.
var listingsRe = regexp.MustCompile(`(?i)(\d{1,3}(?:[,.' \x{00a0}]\d{3})+|\d+)\s*listings\b`)

var countSeparators = strings.NewReplacer(",", "", ".", "", "'", "", " ", "", "\u00a0", "")

// Ensure ListingCounter implements watchscout.ListingCounter at compile time.
var _ watchscout.ListingCounter = (*ListingCounter)(nil)

// ListingCounter reads the human-readable total count from a result page.
type ListingCounter struct{}

// NewListingCounter creates a new ListingCounter.
func NewListingCounter() *ListingCounter {
	return &ListingCounter{}
}

// CountListings returns the listing total shown on the page.
// The marker is looked up in <strong> elements first, then in the body text.
func (c *ListingCounter) CountListings(html string) (int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, watchscout.Errorf(watchscout.EMALFORMED, "failed to parse HTML: %v", err)
	}

	var (
		count int
		found bool
	)
	doc.Find("strong").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		count, found = parseCount(sel.Text())
		return !found
	})
	if found {
		return count, nil
	}

	if count, found = parseCount(doc.Find("body").Text()); found {
		return count, nil
	}

	return 0, watchscout.Errorf(watchscout.ENOTFOUND, "listing count marker not found")
}

func parseCount(text string) (int, bool) {
	m := listingsRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(countSeparators.Replace(strings.TrimSpace(m[1])))
	if err != nil {
		return 0, false
	}
	return n, true
}
