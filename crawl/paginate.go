package crawl

import (
	"context"

	"github.com/fwojciec/herbarium"
)

// maxListingPages caps pagination for one category. The catalog never
// exceeds a handful of pages; the cap stops runaway loops when the site
// serves the same listing for any page number.
const maxListingPages = 20

// Paginator discovers the item URLs of one category in one language by
// walking numbered listing pages.
type Paginator struct {
	Fetcher  herbarium.Fetcher
	Listings herbarium.ListingParser
	Limiter  *Limiter
	Log      LogFunc
}

// ItemURLs returns the deduplicated item URLs for a category and language.
// It never returns an error: a fetch failure yields the URLs accumulated so
// far (possibly none), logged for the operator, and the caller proceeds to
// the next category.
func (p *Paginator) ItemURLs(ctx context.Context, site Site, cat herbarium.Category, lang herbarium.Language) []string {
	first := site.ListingURL(cat, lang, 1)

	html, err := p.fetch(ctx, first)
	if err != nil {
		p.logf("listing fetch failed %s: %v", first, err)
		return nil
	}

	urls, err := p.Listings.ItemURLs(html, first)
	if err != nil {
		p.logf("listing parse failed %s: %v", first, err)
		return nil
	}

	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		seen[u] = true
	}

	// The localized result-count phrase tells us when to stop; without it
	// the first page's count is all we know, which may undercount on
	// paginated listings.
	total, ok := p.Listings.TotalCount(html)
	if !ok {
		total = len(urls)
	}

	for page := 2; len(urls) < total && page <= maxListingPages; page++ {
		pageURL := site.ListingURL(cat, lang, page)

		html, err := p.fetch(ctx, pageURL)
		if err != nil {
			p.logf("listing fetch failed %s: %v", pageURL, err)
			break
		}

		pageURLs, err := p.Listings.ItemURLs(html, pageURL)
		if err != nil {
			p.logf("listing parse failed %s: %v", pageURL, err)
			break
		}

		added := 0
		for _, u := range pageURLs {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
				added++
			}
		}

		// A page with nothing new is the end of results even when the
		// count target says otherwise.
		if added == 0 {
			break
		}
	}

	return urls
}

func (p *Paginator) fetch(ctx context.Context, url string) (string, error) {
	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	return p.Fetcher.Fetch(ctx, url)
}

func (p *Paginator) logf(format string, args ...any) {
	if p.Log != nil {
		p.Log(format, args...)
	}
}
