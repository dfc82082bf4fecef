package mock

import "github.com/fwojciec/herbarium"

var _ herbarium.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of herbarium.Extractor.
type Extractor struct {
	ExtractFn func(html string, sourceURL string) (*herbarium.Record, error)
}

func (e *Extractor) Extract(html string, sourceURL string) (*herbarium.Record, error) {
	return e.ExtractFn(html, sourceURL)
}

var _ herbarium.ListingParser = (*ListingParser)(nil)

// ListingParser is a mock implementation of herbarium.ListingParser.
type ListingParser struct {
	ItemURLsFn   func(html string, baseURL string) ([]string, error)
	TotalCountFn func(html string) (int, bool)
}

func (p *ListingParser) ItemURLs(html string, baseURL string) ([]string, error) {
	return p.ItemURLsFn(html, baseURL)
}

func (p *ListingParser) TotalCount(html string) (int, bool) {
	return p.TotalCountFn(html)
}
