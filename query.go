package watchscout

import "strings"

// DefaultPageSize is the number of results requested per page.
const DefaultPageSize = 120

// ResultView is the only result layout requested from the marketplace.
const ResultView = "list"

// SearchQuery describes one page of a search. It is a value type: each
// page of a session gets its own copy via WithPage.
type SearchQuery struct {
	Term     string `json:"term"`
	PageSize int    `json:"pageSize"`
	Page     int    `json:"page"`
}

// NewSearchQuery returns a query for the first page with the default page size.
func NewSearchQuery(term string) SearchQuery {
	return SearchQuery{
		Term:     term,
		PageSize: DefaultPageSize,
		Page:     1,
	}
}

// Validate returns an error if the query cannot be sent.
func (q SearchQuery) Validate() error {
	if strings.TrimSpace(q.Term) == "" {
		return Errorf(EINVALID, "search term required")
	}
	if q.PageSize <= 0 {
		return Errorf(EINVALID, "page size must be positive, got %d", q.PageSize)
	}
	if q.Page < 1 {
		return Errorf(EINVALID, "page must be at least 1, got %d", q.Page)
	}
	return nil
}

// WithPage returns a copy of the query pointing at page n.
func (q SearchQuery) WithPage(n int) SearchQuery {
	q.Page = n
	return q
}

// SearchRequest is the canonical outbound request for one result page.
type SearchRequest struct {
	Query SearchQuery
	URL   string
}

// RequestBuilder turns a search query into a request for a specific marketplace.
type RequestBuilder interface {
	// Build returns the request for the query's page.
	// Returns EINVALID if the query fails validation.
	// Implementations must be deterministic.
	Build(q SearchQuery) (*SearchRequest, error)
}
