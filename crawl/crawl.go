package crawl

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/herbarium"
)

// Crawler orchestrates one pass of the catalog in one language. Execution
// is sequential by design: at most one outstanding request, spaced by the
// Limiter, so the source site never sees a burst.
type Crawler struct {
	Site      Site
	Fetcher   herbarium.Fetcher
	Extractor herbarium.Extractor
	Listings  herbarium.ListingParser
	Records   herbarium.RecordStore
	Images    herbarium.ImageStore
	Limiter   *Limiter
	Robots    *Robots

	// Overrides maps a lower-cased candidate title to a baseline slug,
	// consulted before the matching cascade. Loaded from the operator's
	// override file for records the cascade cannot resolve.
	Overrides map[string]string

	// Categories limits the pass; empty means all.
	Categories []herbarium.Category

	DryRun     bool
	SkipImages bool
}

// Result holds the outcome of one language pass.
type Result struct {
	Saved     int
	Skipped   int
	Failed    int
	Unmatched int
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressStarted ProgressType = iota
	ProgressSaved
	ProgressSkipped
	ProgressUnmatched
	ProgressFinished
)

// ProgressEvent reports progress during a language pass.
type ProgressEvent struct {
	Type     ProgressType
	Language herbarium.Language
	Category herbarium.Category
	URL      string
	Slug     string
	Total    int
	Err      error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// RunLanguage crawls every configured category in one language. For the
// baseline language each extracted page establishes an entity: the slug is
// derived from the product image and the record is written directly. For
// other languages each record must resolve to an existing baseline slug
// through the override map or the matching cascade; unresolved records are
// dropped and counted for manual follow-up.
func (c *Crawler) RunLanguage(ctx context.Context, lang herbarium.Language, progress ProgressFunc) (*Result, error) {
	if !lang.Valid() {
		return nil, herbarium.Errorf(herbarium.EINVALID, "unknown language %q", lang)
	}

	var index *herbarium.BaselineIndex
	if lang != herbarium.BaselineLanguage {
		ix, err := c.buildBaselineIndex(ctx)
		if err != nil {
			return nil, err
		}
		if ix.Len() == 0 {
			return nil, herbarium.Errorf(herbarium.ENOTFOUND, "no baseline records in store; run the %s pass first", herbarium.BaselineLanguage)
		}
		index = ix
	}

	categories := c.Categories
	if len(categories) == 0 {
		categories = herbarium.Categories()
	}

	pager := &Paginator{Fetcher: c.Fetcher, Listings: c.Listings, Limiter: c.Limiter}

	var result Result
	for _, cat := range categories {
		listingURL := c.Site.ListingURL(cat, lang, 1)
		if !c.Robots.Allowed(listingURL) {
			result.Skipped++
			c.notify(progress, ProgressEvent{Type: ProgressSkipped, Language: lang, Category: cat, URL: listingURL,
				Err: herbarium.Errorf(herbarium.EUNPROCESSABLE, "disallowed by robots.txt")})
			continue
		}

		urls := pager.ItemURLs(ctx, c.Site, cat, lang)
		c.notify(progress, ProgressEvent{Type: ProgressStarted, Language: lang, Category: cat, Total: len(urls)})

		for _, url := range urls {
			if err := ctx.Err(); err != nil {
				return &result, err
			}
			c.processItem(ctx, lang, cat, url, index, &result, progress)
		}
	}

	if !c.DryRun {
		if _, err := c.Records.WriteIndex(ctx); err != nil {
			return &result, err
		}
	}

	c.notify(progress, ProgressEvent{Type: ProgressFinished, Language: lang})
	return &result, nil
}

// processItem fetches, extracts and persists a single product page. Every
// failure mode is a local skip: the pass always continues to the next URL.
func (c *Crawler) processItem(ctx context.Context, lang herbarium.Language, cat herbarium.Category, url string, index *herbarium.BaselineIndex, result *Result, progress ProgressFunc) {
	if !c.Robots.Allowed(url) {
		result.Skipped++
		c.notify(progress, ProgressEvent{Type: ProgressSkipped, Language: lang, Category: cat, URL: url,
			Err: herbarium.Errorf(herbarium.EUNPROCESSABLE, "disallowed by robots.txt")})
		return
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			result.Failed++
			return
		}
	}

	html, err := c.Fetcher.Fetch(ctx, url)
	if err != nil {
		result.Failed++
		c.notify(progress, ProgressEvent{Type: ProgressSkipped, Language: lang, Category: cat, URL: url, Err: err})
		return
	}

	rec, err := c.Extractor.Extract(html, url)
	if err != nil {
		result.Skipped++
		c.notify(progress, ProgressEvent{Type: ProgressSkipped, Language: lang, Category: cat, URL: url, Err: err})
		return
	}

	rec.Metadata.Language = lang
	rec.Metadata.ContentHash = ContentHash(html)
	if rec.Category == "" {
		rec.Category = cat
	}

	if lang == herbarium.BaselineLanguage {
		c.processBaseline(ctx, rec, result, progress)
		return
	}
	c.processTranslation(ctx, rec, index, result, progress)
}

func (c *Crawler) processBaseline(ctx context.Context, rec *herbarium.Record, result *Result, progress ProgressFunc) {
	slug := herbarium.SlugFromImageURL(rec.ImageURL)
	if slug == "" {
		result.Skipped++
		c.notify(progress, ProgressEvent{Type: ProgressSkipped, Language: rec.Metadata.Language, URL: rec.Metadata.SourceURL,
			Err: herbarium.Errorf(herbarium.EUNPROCESSABLE, "no product image to derive slug from")})
		return
	}
	rec.Slug = slug
	rec.Image = c.storeImage(ctx, rec)

	if err := c.write(ctx, rec); err != nil {
		result.Failed++
		c.notify(progress, ProgressEvent{Type: ProgressSkipped, Language: rec.Metadata.Language, URL: rec.Metadata.SourceURL, Err: err})
		return
	}

	result.Saved++
	c.notify(progress, ProgressEvent{Type: ProgressSaved, Language: rec.Metadata.Language, URL: rec.Metadata.SourceURL, Slug: slug})
}

func (c *Crawler) processTranslation(ctx context.Context, rec *herbarium.Record, index *herbarium.BaselineIndex, result *Result, progress ProgressFunc) {
	slug, ok := c.Overrides[strings.ToLower(strings.TrimSpace(rec.Title))]
	if !ok {
		slug, ok = herbarium.MatchBaseline(rec, index)
	}
	if !ok {
		result.Unmatched++
		c.notify(progress, ProgressEvent{Type: ProgressUnmatched, Language: rec.Metadata.Language, URL: rec.Metadata.SourceURL})
		return
	}

	rec.Slug = slug
	if baseline := index.BySlug(slug); baseline != nil {
		// Translations share the baseline entity's stored image and,
		// when the localized page carries no category hint, its
		// category.
		rec.Image = baseline.Image
		if rec.Category == "" {
			rec.Category = baseline.Category
		}
	}

	if err := c.write(ctx, rec); err != nil {
		result.Failed++
		c.notify(progress, ProgressEvent{Type: ProgressSkipped, Language: rec.Metadata.Language, URL: rec.Metadata.SourceURL, Err: err})
		return
	}

	result.Saved++
	c.notify(progress, ProgressEvent{Type: ProgressSaved, Language: rec.Metadata.Language, URL: rec.Metadata.SourceURL, Slug: slug})
}

// storeImage downloads the product image unless images are skipped or the
// run is dry. The stored path is conventional either way so the record's
// image reference stays stable.
func (c *Crawler) storeImage(ctx context.Context, rec *herbarium.Record) string {
	ext := path.Ext(rec.ImageURL)
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if ext == "" {
		ext = ".jpg"
	}
	relPath := path.Join("images", rec.Slug+ext)

	if c.SkipImages || c.DryRun || c.Images == nil || rec.ImageURL == "" {
		return relPath
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return relPath
		}
	}
	stored, err := c.Images.SaveImage(ctx, rec.Slug, rec.ImageURL)
	if err != nil {
		return relPath
	}
	return stored
}

func (c *Crawler) write(ctx context.Context, rec *herbarium.Record) error {
	if c.DryRun {
		return rec.Validate()
	}
	return c.Records.WriteRecord(ctx, rec)
}

// buildBaselineIndex loads every baseline record from the store into the
// per-run matching index.
func (c *Crawler) buildBaselineIndex(ctx context.Context) (*herbarium.BaselineIndex, error) {
	slugs, err := c.Records.Slugs(ctx)
	if err != nil {
		return nil, err
	}

	ix := herbarium.NewBaselineIndex()
	for _, slug := range slugs {
		rec, err := c.Records.ReadRecord(ctx, slug, herbarium.BaselineLanguage)
		if err != nil {
			// Unreadable baseline records are the verifier's
			// problem, not the matcher's.
			continue
		}
		ix.Add(rec)
	}
	return ix, nil
}

func (c *Crawler) notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}

// ContentHash returns the xxhash of a page body, stored in record metadata
// so the repair flow can skip pages that have not changed since the scrape.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
