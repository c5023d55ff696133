package shared

import (
	"context"
	"math"
	"net/url"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 5
)

// PageParams are the client-supplied listing controls, validated and
// defaulted once per request.
type PageParams struct {
	Page       int
	Limit      int
	StartIndex int
	Ascending  bool
}

// ParsePageParams reads page, limit, startIndex and sort from a query
// string. An explicit startIndex is the literal offset; when absent the
// offset is derived from page so that page and cursor metadata agree.
func ParsePageParams(values url.Values) PageParams {
	page, _ := strconv.Atoi(values.Get("page"))
	if page < 1 {
		page = defaultPage
	}
	limit, _ := strconv.Atoi(values.Get("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	startIndex := (page - 1) * limit
	if raw := values.Get("startIndex"); raw != "" {
		if idx, err := strconv.Atoi(raw); err == nil && idx >= 0 {
			startIndex = idx
		}
	}
	return PageParams{
		Page:       page,
		Limit:      limit,
		StartIndex: startIndex,
		Ascending:  values.Get("sort") == "asc",
	}
}

// Window is the slice of a collection a repository should fetch, ordered by
// creation time.
type Window struct {
	Offset     int
	Limit      int
	Descending bool
}

// Window converts the parsed parameters into a fetch window.
func (p PageParams) Window() Window {
	return Window{Offset: p.StartIndex, Limit: p.Limit, Descending: !p.Ascending}
}

// PageCursor names the adjacent page a client can request next.
type PageCursor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// PageLinks carries the optional next/prev cursors. Next and Prev are
// independent of each other.
type PageLinks struct {
	Next *PageCursor `json:"next,omitempty"`
	Prev *PageCursor `json:"prev,omitempty"`
}

// Page is one stable page of results plus its pagination metadata.
type Page[T any] struct {
	Count      int
	TotalPages int
	Links      PageLinks
	Data       []T
}

// FetchFunc returns one window of records plus the unfiltered collection
// total. Population of related records is the closure's concern.
type FetchFunc[T any] func(ctx context.Context, window Window) ([]T, int, error)

// Paginate runs fetch for the requested window and computes metadata:
// totalPages = ceil(total/limit), next present iff page*limit < total,
// prev present iff startIndex > 0. Read-only and safe to retry.
func Paginate[T any](ctx context.Context, params PageParams, fetch FetchFunc[T]) (Page[T], error) {
	records, total, err := fetch(ctx, params.Window())
	if err != nil {
		return Page[T]{}, err
	}
	if records == nil {
		records = []T{}
	}
	page := Page[T]{
		Count:      len(records),
		TotalPages: int(math.Ceil(float64(total) / float64(params.Limit))),
		Data:       records,
	}
	if params.Page*params.Limit < total {
		page.Links.Next = &PageCursor{Page: params.Page + 1, Limit: params.Limit}
	}
	if params.StartIndex > 0 {
		page.Links.Prev = &PageCursor{Page: params.Page - 1, Limit: params.Limit}
	}
	return page, nil
}
