package mock

import "github.com/fwojciec/watchscout"

var _ watchscout.RequestBuilder = (*RequestBuilder)(nil)

// RequestBuilder is a mock implementation of watchscout.RequestBuilder.
type RequestBuilder struct {
	BuildFn func(q watchscout.SearchQuery) (*watchscout.SearchRequest, error)
}

func (b *RequestBuilder) Build(q watchscout.SearchQuery) (*watchscout.SearchRequest, error) {
	return b.BuildFn(q)
}
