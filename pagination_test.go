package venice

import (
	"context"
	"errors"
	"testing"
)

// fakePage implements PageInfo for paginator tests.
type fakePage struct {
	items      []string
	hasMore    bool
	nextCursor string
}

func (p fakePage) PageItems() []string    { return p.items }
func (p fakePage) PageHasMore() bool      { return p.hasMore }
func (p fakePage) PageNextCursor() string { return p.nextCursor }

func TestPageParams_Values(t *testing.T) {
	tests := []struct {
		name   string
		params PageParams
		want   string
	}{
		{"zero value omits both", PageParams{}, ""},
		{"limit only", PageParams{Limit: 10}, "limit=10"},
		{"cursor only", PageParams{Cursor: "abc"}, "cursor=abc"},
		{"both", PageParams{Limit: 5, Cursor: "xyz"}, "cursor=xyz&limit=5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Values().Encode(); got != tt.want {
				t.Errorf("Values().Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPaginator_WalksCursors(t *testing.T) {
	pages := []fakePage{
		{items: []string{"a", "b"}, hasMore: true, nextCursor: "c1"},
		{items: []string{"c"}, hasMore: true, nextCursor: "c2"},
		{items: []string{"d"}, hasMore: false},
	}
	var seenCursors []string
	call := 0
	fetch := func(ctx context.Context, params PageParams) (PageInfo[string], *RateLimitInfo, error) {
		seenCursors = append(seenCursors, params.Cursor)
		p := pages[call]
		call++
		return p, &RateLimitInfo{RemainingRequests: Int64(int64(10 - call))}, nil
	}

	paginator := NewPaginator(fetch, PageParams{Limit: 2})

	var all []string
	for {
		page, err := paginator.NextPage(context.Background())
		if err != nil {
			t.Fatalf("NextPage = %v", err)
		}
		if page == nil {
			break
		}
		if page.RateLimit == nil {
			t.Error("page should carry the fetch's rate-limit snapshot")
		}
		all = append(all, page.Items...)
	}

	if got, want := len(all), 4; got != want {
		t.Fatalf("collected %d items, want %d", got, want)
	}
	for i, want := range []string{"a", "b", "c", "d"} {
		if all[i] != want {
			t.Errorf("item %d = %q, want %q", i, all[i], want)
		}
	}
	for i, want := range []string{"", "c1", "c2"} {
		if seenCursors[i] != want {
			t.Errorf("fetch %d saw cursor %q, want %q", i, seenCursors[i], want)
		}
	}

	// Terminal paginator never re-invokes the fetch.
	page, err := paginator.NextPage(context.Background())
	if page != nil || err != nil {
		t.Errorf("terminal NextPage = (%v, %v), want (nil, nil)", page, err)
	}
	if call != 3 {
		t.Errorf("fetch invoked %d times, want 3", call)
	}
}

func TestPaginator_HasMoreWithoutCursorTerminates(t *testing.T) {
	call := 0
	fetch := func(ctx context.Context, params PageParams) (PageInfo[string], *RateLimitInfo, error) {
		call++
		return fakePage{items: []string{"x"}, hasMore: true, nextCursor: ""}, nil, nil
	}

	paginator := NewPaginator(fetch, PageParams{})
	all, err := paginator.AllPages(context.Background())
	if err != nil {
		t.Fatalf("AllPages = %v", err)
	}
	if len(all) != 1 || call != 1 {
		t.Errorf("got %d items after %d fetches, want 1 after 1", len(all), call)
	}
}

func TestPaginator_IgnoresCursorWhenDone(t *testing.T) {
	fetch := func(ctx context.Context, params PageParams) (PageInfo[string], *RateLimitInfo, error) {
		// has_more=false with a (bogus) cursor still terminates.
		return fakePage{items: []string{"x"}, hasMore: false, nextCursor: "stale"}, nil, nil
	}

	paginator := NewPaginator(fetch, PageParams{})
	all, err := paginator.AllPages(context.Background())
	if err != nil {
		t.Fatalf("AllPages = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("got %d items, want 1", len(all))
	}
}

func TestPaginator_FetchErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	call := 0
	fetch := func(ctx context.Context, params PageParams) (PageInfo[string], *RateLimitInfo, error) {
		call++
		if call == 2 {
			return nil, nil, boom
		}
		return fakePage{items: []string{"a"}, hasMore: true, nextCursor: "next"}, nil, nil
	}

	paginator := NewPaginator(fetch, PageParams{})
	all, err := paginator.AllPages(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("AllPages = %v, want %v", err, boom)
	}
	if all != nil {
		t.Errorf("partial results should be discarded, got %v", all)
	}
}
