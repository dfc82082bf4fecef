package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/herbarium"
	"github.com/fwojciec/herbarium/crawl"
	"github.com/fwojciec/herbarium/goquery"
	herbhttp "github.com/fwojciec/herbarium/http"
	herbslog "github.com/fwojciec/herbarium/slog"
	"github.com/fwojciec/herbarium/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Overridable services for end-to-end testing. Nil fields are wired
	// to the real implementations in Run.
	Records   herbarium.RecordStore
	Images    herbarium.ImageStore
	Fetcher   herbarium.Fetcher
	Extractor herbarium.Extractor
	Listings  herbarium.ListingParser

	// SkipRobots disables the robots.txt fetch; used by tests so a crawl
	// never leaves the mock fetcher.
	SkipRobots bool
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("herbarium"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'herbarium --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.StorePath = cli.Store
	deps.Site = crawl.NewSite(cli.BaseURL)
	deps.Limiter = crawl.NewLimiter(cli.Delay)
	deps.Logger = logger
	deps.SkipRobots = m.SkipRobots

	deps.Records = m.Records
	if deps.Records == nil {
		deps.Records = herbslog.NewLoggingRecordStore(yaml.NewStore(cli.Store), logger)
	}
	deps.Images = m.Images
	if deps.Images == nil {
		deps.Images = yaml.NewImages(cli.Store, nil)
	}

	deps.Fetcher = m.Fetcher
	if deps.Fetcher == nil {
		deps.Fetcher = herbslog.NewLoggingFetcher(herbhttp.NewFetcher(), logger)
	}
	defer deps.Fetcher.Close()

	deps.Extractor = m.Extractor
	if deps.Extractor == nil {
		deps.Extractor = goquery.NewProductExtractor()
	}
	deps.Listings = m.Listings
	if deps.Listings == nil {
		deps.Listings = goquery.NewListingParser()
	}

	return kongCtx.Run(deps)
}
