package main

import (
	"fmt"

	"github.com/fwojciec/herbarium"
	"github.com/fwojciec/herbarium/crawl"
	"github.com/fwojciec/herbarium/yaml"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	langs, err := resolveLanguages(c.Lang, c.AllLanguages)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", herbarium.ErrorMessage(err))
		return err
	}
	cats, err := resolveCategories(c.Category)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", herbarium.ErrorMessage(err))
		return err
	}
	overrides, err := loadOverrides(c.Overrides)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", herbarium.ErrorMessage(err))
		return err
	}

	crawler := &crawl.Crawler{
		Site:       deps.Site,
		Fetcher:    deps.Fetcher,
		Extractor:  deps.Extractor,
		Listings:   deps.Listings,
		Records:    deps.Records,
		Images:     deps.Images,
		Limiter:    deps.Limiter,
		Robots:     deps.robots(),
		Overrides:  overrides,
		Categories: cats,
		DryRun:     c.DryRun,
		SkipImages: c.SkipImages,
	}

	for _, lang := range langs {
		if err := runLanguage(deps, crawler, lang); err != nil {
			return err
		}
	}
	return nil
}

// runLanguage crawls one language and prints its summary.
func runLanguage(deps *Dependencies, crawler *crawl.Crawler, lang herbarium.Language) error {
	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "%s %s: %d pages\n", event.Language, event.Category, event.Total)
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Err)
		case crawl.ProgressUnmatched:
			fmt.Fprintf(deps.Stderr, "  unmatched %s\n", event.URL)
		}
	}

	result, err := crawler.RunLanguage(deps.Ctx, lang, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling %s: %s\n", lang, herbarium.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s: saved %d, skipped %d, failed %d", lang, result.Saved, result.Skipped, result.Failed)
	if lang != herbarium.BaselineLanguage {
		fmt.Fprintf(deps.Stdout, ", unmatched %d", result.Unmatched)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}

// resolveLanguages expands the --lang/--all-languages flags into an ordered
// language list. The baseline always runs first when included, so slugs
// exist before any translation pass tries to match against them.
func resolveLanguages(codes []string, all bool) ([]herbarium.Language, error) {
	if all {
		return herbarium.Languages(), nil
	}
	if len(codes) == 0 {
		return []herbarium.Language{herbarium.BaselineLanguage}, nil
	}

	requested := make(map[herbarium.Language]bool, len(codes))
	for _, code := range codes {
		lang := herbarium.Language(code)
		if !lang.Valid() {
			return nil, herbarium.Errorf(herbarium.EINVALID, "unknown language %q", code)
		}
		requested[lang] = true
	}

	var langs []herbarium.Language
	for _, lang := range herbarium.Languages() {
		if requested[lang] {
			langs = append(langs, lang)
		}
	}
	return langs, nil
}

func resolveCategories(names []string) ([]herbarium.Category, error) {
	var cats []herbarium.Category
	for _, name := range names {
		cat := herbarium.Category(name)
		valid := false
		for _, known := range herbarium.Categories() {
			if cat == known {
				valid = true
				break
			}
		}
		if !valid {
			return nil, herbarium.Errorf(herbarium.EINVALID, "unknown category %q", name)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

func loadOverrides(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	return yaml.LoadOverrides(path)
}
