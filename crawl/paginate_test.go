package crawl_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/herbarium"
	"github.com/fwojciec/herbarium/crawl"
	"github.com/fwojciec/herbarium/mock"
	"github.com/stretchr/testify/assert"
)

// pagedListing simulates a category with total items spread perPage per
// listing page, tracking how many pages were fetched.
type pagedListing struct {
	total   int
	perPage int
	fetched []string
}

func (l *pagedListing) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			l.fetched = append(l.fetched, url)
			return url, nil // parser keys off the URL echoed as "html"
		},
	}
}

func (l *pagedListing) parser() *mock.ListingParser {
	return &mock.ListingParser{
		ItemURLsFn: func(html string, baseURL string) ([]string, error) {
			page := 1
			if i := strings.Index(html, "page/"); i >= 0 {
				fmt.Sscanf(html[i:], "page/%d/", &page)
			}
			var urls []string
			for n := (page-1)*l.perPage + 1; n <= page*l.perPage && n <= l.total; n++ {
				urls = append(urls, fmt.Sprintf("https://example.com/product/item-%d/", n))
			}
			return urls, nil
		},
		TotalCountFn: func(html string) (int, bool) {
			return l.total, true
		},
	}
}

// ceil(25/9) = 3 pages, no more.
func TestPaginator_FetchesExactlyNeededPages(t *testing.T) {
	t.Parallel()

	listing := &pagedListing{total: 25, perPage: 9}
	p := &crawl.Paginator{Fetcher: listing.fetcher(), Listings: listing.parser()}

	urls := p.ItemURLs(context.Background(), crawl.NewSite("https://example.com"), herbarium.CategoryHerbs, herbarium.LangEN)

	assert.Len(t, urls, 25)
	assert.Len(t, listing.fetched, 3)
}

func TestPaginator_StopsOnNoNewURLs(t *testing.T) {
	t.Parallel()

	// Every page serves the same nine items; the count claims 25.
	fetched := 0
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			fetched++
			return "listing", nil
		},
	}
	parser := &mock.ListingParser{
		ItemURLsFn: func(html string, baseURL string) ([]string, error) {
			var urls []string
			for n := 1; n <= 9; n++ {
				urls = append(urls, fmt.Sprintf("https://example.com/product/item-%d/", n))
			}
			return urls, nil
		},
		TotalCountFn: func(html string) (int, bool) { return 25, true },
	}

	p := &crawl.Paginator{Fetcher: fetcher, Listings: parser}

	urls := p.ItemURLs(context.Background(), crawl.NewSite("https://example.com"), herbarium.CategoryHerbs, herbarium.LangEN)

	assert.Len(t, urls, 9)
	assert.Equal(t, 2, fetched, "second page yielded nothing new, so crawling stopped")
}

func TestPaginator_NoCountFallsBackToFirstPage(t *testing.T) {
	t.Parallel()

	listing := &pagedListing{total: 9, perPage: 9}
	parser := listing.parser()
	parser.TotalCountFn = func(html string) (int, bool) { return 0, false }

	p := &crawl.Paginator{Fetcher: listing.fetcher(), Listings: parser}

	urls := p.ItemURLs(context.Background(), crawl.NewSite("https://example.com"), herbarium.CategoryHerbs, herbarium.LangEN)

	assert.Len(t, urls, 9)
	assert.Len(t, listing.fetched, 1)
}

func TestPaginator_FirstPageFetchFailure(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "", fmt.Errorf("connection refused")
		},
	}

	var logged []string
	p := &crawl.Paginator{
		Fetcher:  fetcher,
		Listings: &mock.ListingParser{},
		Log:      func(format string, args ...any) { logged = append(logged, fmt.Sprintf(format, args...)) },
	}

	urls := p.ItemURLs(context.Background(), crawl.NewSite("https://example.com"), herbarium.CategoryHerbs, herbarium.LangEN)

	assert.Empty(t, urls, "fetch failure yields an empty result, never an error")
	assert.NotEmpty(t, logged)
}

func TestPaginator_LaterPageFailureYieldsPartialResult(t *testing.T) {
	t.Parallel()

	listing := &pagedListing{total: 25, perPage: 9}
	baseFetcher := listing.fetcher()
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if strings.Contains(url, "page/3/") {
				return "", fmt.Errorf("timeout")
			}
			return baseFetcher.Fetch(ctx, url)
		},
	}

	p := &crawl.Paginator{Fetcher: fetcher, Listings: listing.parser()}

	urls := p.ItemURLs(context.Background(), crawl.NewSite("https://example.com"), herbarium.CategoryHerbs, herbarium.LangEN)

	assert.Len(t, urls, 18, "two successful pages of nine")
}

func TestPaginator_HardPageCap(t *testing.T) {
	t.Parallel()

	// One new item per page and an absurd claimed total.
	listing := &pagedListing{total: 1000, perPage: 1}
	p := &crawl.Paginator{Fetcher: listing.fetcher(), Listings: listing.parser()}

	_ = p.ItemURLs(context.Background(), crawl.NewSite("https://example.com"), herbarium.CategoryHerbs, herbarium.LangEN)

	assert.Len(t, listing.fetched, 20, "pagination stops at the hard page cap")
}
