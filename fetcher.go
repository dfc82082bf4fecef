package herbarium

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a GET against the URL and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases client resources.
	Close() error
}

// Extractor parses a raw product page into a structured record.
// A page without a usable title is unprocessable; the crawler skips it.
type Extractor interface {
	// Extract processes raw HTML fetched from sourceURL. The returned
	// record has no slug assigned: the crawler derives it (baseline) or
	// resolves it through the matching cascade (other languages).
	Extract(html string, sourceURL string) (*Record, error)
}

// ListingParser reads category listing pages.
type ListingParser interface {
	// ItemURLs returns the product URLs linked from a listing page,
	// deduplicated by exact URL string, with relative URLs resolved
	// against baseURL.
	ItemURLs(html string, baseURL string) ([]string, error)

	// TotalCount parses the localized "showing N results" phrase.
	// ok=false when none of the locale phrasings match; the caller falls
	// back to the first page's URL count.
	TotalCount(html string) (n int, ok bool)
}
