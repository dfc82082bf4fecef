package main

import (
	"fmt"

	"github.com/fwojciec/herbarium"
	"github.com/fwojciec/herbarium/crawl"
	"github.com/fwojciec/herbarium/yaml"
)

// Run executes the rescrape command. The whole crawl lands in a staging
// directory; the live store is only replaced once every language pass has
// succeeded.
func (c *RescrapeCmd) Run(deps *Dependencies) error {
	overrides, err := loadOverrides(c.Overrides)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", herbarium.ErrorMessage(err))
		return err
	}

	staged := yaml.NewStagedStore(deps.StorePath)

	crawler := &crawl.Crawler{
		Site:       deps.Site,
		Fetcher:    deps.Fetcher,
		Extractor:  deps.Extractor,
		Listings:   deps.Listings,
		Records:    staged,
		Images:     yaml.NewImages(staged.BaseDir(), nil),
		Limiter:    deps.Limiter,
		Robots:     deps.robots(),
		Overrides:  overrides,
		SkipImages: c.SkipImages,
	}

	for _, lang := range herbarium.Languages() {
		if err := runLanguage(deps, crawler, lang); err != nil {
			if abortErr := staged.Abort(); abortErr != nil {
				fmt.Fprintf(deps.Stderr, "error discarding staged store: %v\n", abortErr)
			}
			fmt.Fprintln(deps.Stdout, "rescrape aborted; existing store untouched")
			return err
		}
	}

	if err := staged.Commit(); err != nil {
		return fmt.Errorf("failed to swap in rescraped store: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "rescrape complete: %s replaced\n", deps.StorePath)
	return nil
}
