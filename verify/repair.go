package verify

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/herbarium"
	"github.com/fwojciec/herbarium/crawl"
)

// Repairer re-fetches translations that a verification pass found to be
// missing fields, and merges any fields the localized page now yields. It
// never invents content: a field the page still lacks stays missing and is
// counted for follow-up.
type Repairer struct {
	Records   herbarium.RecordStore
	Fetcher   herbarium.Fetcher
	Extractor herbarium.Extractor
	Site      crawl.Site
	Limiter   *crawl.Limiter
	Log       crawl.LogFunc

	DryRun bool

	// RetryDelays overrides the fetch backoff schedule; nil means
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// RepairResult summarizes one repair pass.
type RepairResult struct {
	// Checked counts (entity, language) pairs with missing fields.
	Checked int
	// Repaired counts records rewritten with at least one recovered field.
	Repaired int
	// Unchanged counts records skipped because the page content hash
	// matches the stored one, so a re-extract cannot yield anything new.
	Unchanged int
	// Failed counts records whose localized page could not be fetched or
	// extracted.
	Failed int
	// StillMissing counts fields absent even after a successful repair
	// fetch.
	StillMissing int
}

// Run walks the report's incomplete entities and attempts to fill missing
// translation fields. With dryRun set it fetches and diffs but writes
// nothing.
func (r *Repairer) Run(ctx context.Context, report *herbarium.StoreReport) (*RepairResult, error) {
	var result RepairResult
	for _, entity := range report.Incomplete() {
		for _, lang := range herbarium.Languages() {
			missing := entity.MissingFields[lang]
			if len(missing) == 0 {
				continue
			}
			if err := ctx.Err(); err != nil {
				return &result, err
			}
			result.Checked++
			r.repairRecord(ctx, entity, lang, missing, &result)
		}
	}
	return &result, nil
}

func (r *Repairer) repairRecord(ctx context.Context, entity herbarium.EntityReport, lang herbarium.Language, missing []herbarium.Field, result *RepairResult) {
	rec, err := r.Records.ReadRecord(ctx, entity.Slug, lang)
	if err != nil {
		result.Failed++
		r.logf("repair: read %s/%s: %v", entity.Slug, lang, err)
		return
	}

	url := r.Site.LocalizeURL(entity.SourceURL, lang)
	if url == "" {
		result.Failed++
		r.logf("repair: %s/%s has no source URL", entity.Slug, lang)
		return
	}

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx); err != nil {
			result.Failed++
			return
		}
	}
	delays := r.RetryDelays
	if delays == nil {
		delays = crawl.DefaultRetryDelays()
	}
	html, err := crawl.FetchWithRetryDelays(ctx, url, r.Fetcher.Fetch, r.Log, delays)
	if err != nil {
		result.Failed++
		r.logf("repair: fetch %s: %v", url, err)
		return
	}

	hash := crawl.ContentHash(html)
	if hash == rec.Metadata.ContentHash {
		result.Unchanged++
		result.StillMissing += len(missing)
		return
	}

	fresh, err := r.Extractor.Extract(html, url)
	if err != nil {
		result.Failed++
		r.logf("repair: extract %s: %v", url, err)
		return
	}

	recovered := 0
	for _, f := range missing {
		if !fresh.Present(f) {
			result.StillMissing++
			continue
		}
		if rec.Sections == nil {
			rec.Sections = make(map[herbarium.Field]string)
		}
		rec.Sections[f] = strings.TrimSpace(fresh.Sections[f])
		recovered++
	}
	if recovered == 0 {
		result.Unchanged++
		return
	}

	rec.Metadata.ContentHash = hash
	rec.Metadata.ScrapedAt = r.now()

	if r.DryRun {
		result.Repaired++
		return
	}
	if err := r.Records.WriteRecord(ctx, rec); err != nil {
		result.Failed++
		r.logf("repair: write %s/%s: %v", entity.Slug, lang, err)
		return
	}
	result.Repaired++
}

func (r *Repairer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Repairer) logf(format string, args ...any) {
	if r.Log != nil {
		r.Log(format, args...)
	}
}
