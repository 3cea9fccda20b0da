// Package chrono24 builds search requests for the chrono24.com marketplace.
package chrono24

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/watchscout"
)

// DefaultBaseURL is the marketplace search endpoint.
const DefaultBaseURL = "https://www.chrono24.com/search/index.htm"

// searchSuffix restricts results to watches and disables search explain diagnostics.
const searchSuffix = "&dosearch=true&searchexplain=false&watchTypes=U&accessoryTypes="

// Ensure Builder implements watchscout.RequestBuilder at compile time.
var _ watchscout.RequestBuilder = (*Builder)(nil)

// Builder builds chrono24 search result URLs.
type Builder struct {
	baseURL string
}

// Option configures a Builder.
type Option func(*Builder)

// WithBaseURL overrides the search endpoint, e.g. to point at a test server.
func WithBaseURL(u string) Option {
	return func(b *Builder) {
		b.baseURL = u
	}
}

// NewBuilder creates a new Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the search URL for the query's page.
func (b *Builder) Build(q watchscout.SearchQuery) (*watchscout.SearchRequest, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	// Parameter order is fixed so identical queries produce identical URLs.
	var s strings.Builder
	s.WriteString(b.baseURL)
	if strings.Contains(b.baseURL, "?") {
		s.WriteString("&")
	} else {
		s.WriteString("?")
	}
	s.WriteString("query=")
	s.WriteString(url.QueryEscape(strings.TrimSpace(q.Term)))
	s.WriteString("&pageSize=")
	s.WriteString(strconv.Itoa(q.PageSize))
	s.WriteString("&resultview=")
	s.WriteString(watchscout.ResultView)
	s.WriteString("&showPage=")
	s.WriteString(strconv.Itoa(q.Page))
	s.WriteString(searchSuffix)

	return &watchscout.SearchRequest{
		Query: q,
		URL:   s.String(),
	}, nil
}
