package venice

import (
	"context"
	"net/url"

	"github.com/google/go-querystring/query"
)

// PageParams carries the cursor-pagination query parameters shared by all
// list endpoints. The zero value requests the first page at the vendor's
// default size.
type PageParams struct {
	// Limit is the maximum number of items per page. Zero omits the
	// parameter.
	Limit int `url:"limit,omitempty"`
	// Cursor is the opaque continuation token from a previous page. Empty
	// omits the parameter.
	Cursor string `url:"cursor,omitempty"`
}

// Values encodes the parameters as a URL query. Encoding a fixed struct of
// scalar fields cannot fail.
func (p PageParams) Values() url.Values {
	v, err := query.Values(p)
	if err != nil {
		return url.Values{}
	}
	return v
}

// PageInfo is the capability interface a list response implements to be
// drivable by a Paginator.
type PageInfo[T any] interface {
	// PageItems returns the items in this page, in order.
	PageItems() []T
	// PageHasMore reports whether more pages are available.
	PageHasMore() bool
	// PageNextCursor returns the continuation token for the next page, or
	// empty when none was provided.
	PageNextCursor() string
}

// Page is one page of results along with the rate-limit snapshot from the
// fetch that produced it.
type Page[T any] struct {
	Items      []T
	HasMore    bool
	NextCursor string
	RateLimit  *RateLimitInfo
}

// PageFetcher fetches one page of results for the given cursor parameters.
type PageFetcher[T any] func(ctx context.Context, params PageParams) (PageInfo[T], *RateLimitInfo, error)

// Paginator iterates a cursor-paginated endpoint. It is single-use and not
// safe for concurrent calls.
type Paginator[T any] struct {
	fetch   PageFetcher[T]
	params  PageParams
	hasMore bool
}

// NewPaginator creates a paginator over fetch starting at params.
func NewPaginator[T any](fetch PageFetcher[T], params PageParams) *Paginator[T] {
	return &Paginator[T]{
		fetch:   fetch,
		params:  params,
		hasMore: true,
	}
}

// NextPage fetches the next page, or returns (nil, nil) once the paginator
// is terminal. A response claiming more pages without supplying a cursor
// also terminates iteration: there is nothing valid to request next.
// When the response reports no more pages, any cursor it carries is ignored.
func (p *Paginator[T]) NextPage(ctx context.Context) (*Page[T], error) {
	if !p.hasMore {
		return nil, nil
	}

	resp, rateLimit, err := p.fetch(ctx, p.params)
	if err != nil {
		return nil, err
	}

	page := &Page[T]{
		Items:      resp.PageItems(),
		HasMore:    resp.PageHasMore(),
		NextCursor: resp.PageNextCursor(),
		RateLimit:  rateLimit,
	}

	p.hasMore = page.HasMore
	if page.NextCursor != "" {
		p.params.Cursor = page.NextCursor
	} else {
		p.hasMore = false
	}

	return page, nil
}

// AllPages drains the paginator eagerly, concatenating items in arrival
// order. The first fetch error is returned as-is and any partially
// accumulated items are discarded; callers that want partial results should
// drive NextPage themselves.
func (p *Paginator[T]) AllPages(ctx context.Context) ([]T, error) {
	var all []T
	for {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			return all, nil
		}
		all = append(all, page.Items...)
	}
}
