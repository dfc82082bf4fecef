package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/herbarium"
	main "github.com/fwojciec/herbarium/cmd/herbarium"
	"github.com/fwojciec/herbarium/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore is an in-memory RecordStore for CLI tests.
type testStore struct {
	records map[string]map[herbarium.Language]*herbarium.Record
	indexed int
}

func newTestStore() *testStore {
	return &testStore{records: make(map[string]map[herbarium.Language]*herbarium.Record)}
}

func (s *testStore) put(rec *herbarium.Record) {
	if s.records[rec.Slug] == nil {
		s.records[rec.Slug] = make(map[herbarium.Language]*herbarium.Record)
	}
	s.records[rec.Slug][rec.Metadata.Language] = rec
}

func (s *testStore) asMock() *mock.RecordStore {
	return &mock.RecordStore{
		WriteRecordFn: func(ctx context.Context, rec *herbarium.Record) error {
			s.put(rec)
			return nil
		},
		ReadRecordFn: func(ctx context.Context, slug string, lang herbarium.Language) (*herbarium.Record, error) {
			rec, ok := s.records[slug][lang]
			if !ok {
				return nil, herbarium.Errorf(herbarium.ENOTFOUND, "no %s record for %q", lang, slug)
			}
			return rec, nil
		},
		SlugsFn: func(ctx context.Context) ([]string, error) {
			var slugs []string
			for slug := range s.records {
				slugs = append(slugs, slug)
			}
			return slugs, nil
		},
		LanguagesFn: func(ctx context.Context, slug string) ([]herbarium.Language, error) {
			var langs []herbarium.Language
			for _, lang := range herbarium.Languages() {
				if _, ok := s.records[slug][lang]; ok {
					langs = append(langs, lang)
				}
			}
			return langs, nil
		},
		WriteIndexFn: func(ctx context.Context) (*herbarium.Index, error) {
			s.indexed++
			return &herbarium.Index{Total: len(s.records)}, nil
		},
	}
}

// ginsengCatalog wires mock services serving a single-product catalog in
// every language. Only the herbs listing carries the product.
func ginsengCatalog() (*mock.Fetcher, *mock.ListingParser, *mock.Extractor) {
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "page:" + url, nil
		},
	}
	listings := &mock.ListingParser{
		ItemURLsFn: func(html string, baseURL string) ([]string, error) {
			if !strings.Contains(baseURL, "western-herbs") {
				return nil, nil
			}
			prefix, _, _ := strings.Cut(baseURL, "/product-category/")
			return []string{prefix + "/product/ginseng/"}, nil
		},
		TotalCountFn: func(html string) (int, bool) {
			return 0, false
		},
	}
	extractor := &mock.Extractor{
		ExtractFn: func(html string, sourceURL string) (*herbarium.Record, error) {
			title := "Ginseng"
			switch {
			case strings.Contains(sourceURL, "/zh-hant/"):
				title = "人參"
			case strings.Contains(sourceURL, "/zh-hans/"):
				title = "人参"
			}
			return &herbarium.Record{
				Title:          title,
				ScientificName: "Panax ginseng",
				ImageURL:       "https://example.com/uploads/ginseng-300.jpg",
				Sections: map[herbarium.Field]string{
					herbarium.FieldHistory: "Used for millennia.",
				},
				Metadata: herbarium.Metadata{SourceURL: sourceURL},
			}, nil
		},
	}
	return fetcher, listings, extractor
}

func TestMainRun_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMainRun_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "scrape")
	assert.Contains(t, stdout.String(), "verify")
}

func TestCmdScrape_Baseline(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	fetcher, listings, extractor := ginsengCatalog()
	m := &main.Main{
		Records:    store.asMock(),
		Fetcher:    fetcher,
		Listings:   listings,
		Extractor:  extractor,
		SkipRobots: true,
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--delay", "1ms", "scrape", "--skip-images"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "en: saved 1, skipped 0, failed 0")

	rec := store.records["ginseng"][herbarium.LangEN]
	require.NotNil(t, rec)
	assert.Equal(t, "Ginseng", rec.Title)
	assert.Equal(t, 1, store.indexed)
}

func TestCmdScrape_AllLanguagesBaselineFirst(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	fetcher, listings, extractor := ginsengCatalog()
	m := &main.Main{
		Records:    store.asMock(),
		Fetcher:    fetcher,
		Listings:   listings,
		Extractor:  extractor,
		SkipRobots: true,
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(),
		[]string{"--delay", "1ms", "scrape", "--all-languages", "--skip-images"}, stdout, stderr)

	require.NoError(t, err)
	require.NotNil(t, store.records["ginseng"][herbarium.LangEN])
	require.NotNil(t, store.records["ginseng"][herbarium.LangZHHK], "translation matched via scientific name")
	require.NotNil(t, store.records["ginseng"][herbarium.LangZHCN])
	assert.Equal(t, "人參", store.records["ginseng"][herbarium.LangZHHK].Title)
}

func TestCmdScrape_UnknownLanguage(t *testing.T) {
	t.Parallel()

	m := &main.Main{
		Records:    newTestStore().asMock(),
		Fetcher:    &mock.Fetcher{},
		SkipRobots: true,
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"scrape", "--lang", "fr"}, stdout, stderr)

	require.Error(t, err)
	assert.Equal(t, herbarium.EINVALID, herbarium.ErrorCode(err))
	assert.Contains(t, stderr.String(), "unknown language")
}

func TestCmdVerify_JSON(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	for _, lang := range herbarium.Languages() {
		store.put(&herbarium.Record{
			Slug:     "ginseng",
			Title:    "Ginseng",
			Sections: map[herbarium.Field]string{herbarium.FieldHistory: "Used for millennia."},
			Metadata: herbarium.Metadata{Language: lang},
		})
	}

	m := &main.Main{Records: store.asMock(), Fetcher: &mock.Fetcher{}, SkipRobots: true}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"verify", "--json"}, stdout, stderr)

	require.NoError(t, err)
	var report struct {
		TotalEntities    int `json:"total_entities"`
		CompleteEntities int `json:"complete_entities"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
	assert.Equal(t, 1, report.TotalEntities)
	assert.Equal(t, 1, report.CompleteEntities)
}

func TestCmdVerify_StrictFailsOnIncomplete(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	store.put(&herbarium.Record{
		Slug:     "ginseng",
		Title:    "Ginseng",
		Metadata: herbarium.Metadata{Language: herbarium.LangEN},
	})

	m := &main.Main{Records: store.asMock(), Fetcher: &mock.Fetcher{}, SkipRobots: true}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"verify", "--strict"}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 entities incomplete")
}

func TestCmdVerify_NoColorWhenPiped(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	store.put(&herbarium.Record{
		Slug:     "ginseng",
		Title:    "Ginseng",
		Metadata: herbarium.Metadata{Language: herbarium.LangEN},
	})

	m := &main.Main{Records: store.asMock(), Fetcher: &mock.Fetcher{}, SkipRobots: true}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"verify"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "ginseng")
	assert.NotContains(t, stdout.String(), "\x1b[", "non-terminal output must be plain")
}

func TestCmdRepair_NothingToRepair(t *testing.T) {
	t.Parallel()

	m := &main.Main{Records: newTestStore().asMock(), Fetcher: &mock.Fetcher{}, SkipRobots: true}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"repair"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "nothing to repair")
}

func TestCmdIndex(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	store.put(&herbarium.Record{
		Slug:     "ginseng",
		Title:    "Ginseng",
		Metadata: herbarium.Metadata{Language: herbarium.LangEN},
	})

	m := &main.Main{Records: store.asMock(), Fetcher: &mock.Fetcher{}, SkipRobots: true}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"index"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "indexed 1 entities")
	assert.Equal(t, 1, store.indexed)
}
