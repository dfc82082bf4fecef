package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/herbarium"
	"github.com/fwojciec/herbarium/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	StorePath  string
	Site       crawl.Site
	Limiter    *crawl.Limiter
	Logger     *slog.Logger
	SkipRobots bool

	Records   herbarium.RecordStore
	Images    herbarium.ImageStore
	Fetcher   herbarium.Fetcher
	Extractor herbarium.Extractor
	Listings  herbarium.ListingParser
}

// robots fetches the site's robots rules unless disabled. A nil result is
// permissive.
func (d *Dependencies) robots() *crawl.Robots {
	if d.SkipRobots {
		return nil
	}
	return crawl.FetchRobots(d.Ctx, d.Fetcher, d.Site)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Store   string        `env:"HERBARIUM_STORE" default:"content/herbs" help:"Content store directory"`
	BaseURL string        `env:"HERBARIUM_BASE_URL" help:"Source catalog origin (default: the production site)"`
	Delay   time.Duration `default:"500ms" help:"Pause between consecutive requests"`
	Verbose bool          `short:"v" help:"Log individual fetches and writes"`

	Scrape   ScrapeCmd   `cmd:"" help:"Crawl the catalog and write records"`
	Rescrape RescrapeCmd `cmd:"" help:"Rebuild the whole store from a fresh crawl"`
	Verify   VerifyCmd   `cmd:"" help:"Check cross-language schema consistency"`
	Repair   RepairCmd   `cmd:"" help:"Re-fetch translations with missing fields"`
	Index    IndexCmd    `cmd:"" help:"Regenerate the store index"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Lang         []string `short:"l" help:"Language to crawl (repeatable; default: en)"`
	AllLanguages bool     `help:"Crawl every language, baseline first"`
	Category     []string `short:"c" help:"Category to crawl (repeatable; default: all)"`
	Overrides    string   `type:"path" help:"YAML file mapping localized titles to slugs"`
	DryRun       bool     `help:"Crawl and extract without writing"`
	SkipImages   bool     `help:"Do not download product images"`
}

// RescrapeCmd is the "rescrape" subcommand.
type RescrapeCmd struct {
	Overrides  string `type:"path" help:"YAML file mapping localized titles to slugs"`
	SkipImages bool   `help:"Do not download product images"`
}

// VerifyCmd is the "verify" subcommand.
type VerifyCmd struct {
	JSON    bool `help:"Emit the report as JSON instead of the console summary"`
	Report  bool `help:"Write reports/verify-report.md and reports/verify-report.json"`
	Strict  bool `help:"Exit non-zero when any entity is incomplete"`
	NoColor bool `help:"Disable ANSI colors in the console summary"`
}

// RepairCmd is the "repair" subcommand.
type RepairCmd struct {
	DryRun bool `help:"Fetch and diff without writing"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct{}
