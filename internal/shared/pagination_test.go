package shared

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchInts(total int) FetchFunc[int] {
	return func(_ context.Context, window Window) ([]int, int, error) {
		var out []int
		for i := window.Offset; i < total && len(out) < window.Limit; i++ {
			out = append(out, i)
		}
		return out, total, nil
	}
}

func TestParsePageParamsDefaults(t *testing.T) {
	params := ParsePageParams(url.Values{})
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 5, params.Limit)
	assert.Equal(t, 0, params.StartIndex)
	assert.False(t, params.Ascending)
}

func TestParsePageParamsDerivesStartIndex(t *testing.T) {
	params := ParsePageParams(url.Values{"page": {"3"}, "limit": {"10"}})
	assert.Equal(t, 20, params.StartIndex)
}

func TestParsePageParamsExplicitStartIndex(t *testing.T) {
	params := ParsePageParams(url.Values{"page": {"3"}, "limit": {"10"}, "startIndex": {"7"}})
	assert.Equal(t, 7, params.StartIndex)
}

func TestParsePageParamsIgnoresGarbage(t *testing.T) {
	params := ParsePageParams(url.Values{"page": {"-2"}, "limit": {"abc"}, "startIndex": {"-9"}})
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 5, params.Limit)
	assert.Equal(t, 0, params.StartIndex)
}

func TestParsePageParamsSort(t *testing.T) {
	assert.True(t, ParsePageParams(url.Values{"sort": {"asc"}}).Ascending)
	assert.False(t, ParsePageParams(url.Values{"sort": {"desc"}}).Ascending)
	assert.False(t, ParsePageParams(url.Values{"sort": {"anything"}}).Ascending)
}

func TestPaginateCountMatchesData(t *testing.T) {
	for _, total := range []int{0, 1, 5, 11} {
		params := ParsePageParams(url.Values{"limit": {"4"}})
		page, err := Paginate(context.Background(), params, fetchInts(total))
		require.NoError(t, err)
		assert.Equal(t, len(page.Data), page.Count, "total=%d", total)
	}
}

func TestPaginateMiddlePageHasBothLinks(t *testing.T) {
	params := ParsePageParams(url.Values{"page": {"2"}, "limit": {"2"}})
	page, err := Paginate(context.Background(), params, fetchInts(5))
	require.NoError(t, err)

	assert.Equal(t, 2, page.Count)
	assert.Equal(t, 3, page.TotalPages)
	require.NotNil(t, page.Links.Next)
	assert.Equal(t, PageCursor{Page: 3, Limit: 2}, *page.Links.Next)
	require.NotNil(t, page.Links.Prev)
	assert.Equal(t, PageCursor{Page: 1, Limit: 2}, *page.Links.Prev)
}

func TestPaginateFirstPageHasNoPrev(t *testing.T) {
	params := ParsePageParams(url.Values{"limit": {"2"}})
	page, err := Paginate(context.Background(), params, fetchInts(5))
	require.NoError(t, err)

	assert.Nil(t, page.Links.Prev)
	require.NotNil(t, page.Links.Next)
}

func TestPaginateLastPageHasNoNext(t *testing.T) {
	params := ParsePageParams(url.Values{"page": {"3"}, "limit": {"2"}})
	page, err := Paginate(context.Background(), params, fetchInts(5))
	require.NoError(t, err)

	assert.Nil(t, page.Links.Next)
	require.NotNil(t, page.Links.Prev)
	assert.Equal(t, 1, page.Count)
}

func TestPaginateBeyondCollection(t *testing.T) {
	params := ParsePageParams(url.Values{"page": {"9"}, "limit": {"5"}})
	page, err := Paginate(context.Background(), params, fetchInts(3))
	require.NoError(t, err)

	assert.Equal(t, 0, page.Count)
	assert.NotNil(t, page.Data)
	assert.Nil(t, page.Links.Next)
	require.NotNil(t, page.Links.Prev)
}

func TestPaginateEmptyCollection(t *testing.T) {
	params := ParsePageParams(url.Values{})
	page, err := Paginate(context.Background(), params, fetchInts(0))
	require.NoError(t, err)

	assert.Equal(t, 0, page.Count)
	assert.Equal(t, 0, page.TotalPages)
	assert.Nil(t, page.Links.Next)
	assert.Nil(t, page.Links.Prev)
}

func TestPaginatePropagatesFetchError(t *testing.T) {
	wantErr := errors.New("boom")
	_, err := Paginate(context.Background(), ParsePageParams(url.Values{}), func(context.Context, Window) ([]int, int, error) {
		return nil, 0, fmt.Errorf("fetch: %w", wantErr)
	})
	assert.ErrorIs(t, err, wantErr)
}
