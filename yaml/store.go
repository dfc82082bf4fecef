package yaml

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/herbarium"
	"github.com/google/uuid"
	goyaml "gopkg.in/yaml.v3"
)

// IndexFile is the name of the generated top-level index document.
const IndexFile = "index.yaml"

// Ensure Store implements herbarium.RecordStore at compile time.
var _ herbarium.RecordStore = (*Store)(nil)

// Store persists records as <base>/<slug>/<language>.yaml files. Writes are
// whole-file overwrites; there is no merge at this layer.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// BaseDir returns the store's root directory.
func (s *Store) BaseDir() string {
	return s.baseDir
}

func (s *Store) recordPath(slug string, lang herbarium.Language) string {
	return filepath.Join(s.baseDir, slug, string(lang)+".yaml")
}

// WriteRecord persists the record under its slug and language, overwriting
// any existing document. A missing ID is assigned here, once, so re-scrapes
// of an existing record keep generating fresh documents without colliding
// identities upstream.
func (s *Store) WriteRecord(ctx context.Context, rec *herbarium.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	data, err := EncodeRecord(rec)
	if err != nil {
		return err
	}

	dir := filepath.Join(s.baseDir, rec.Slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(s.recordPath(rec.Slug, rec.Metadata.Language), data, 0o644)
}

// ReadRecord loads one document. Returns ENOTFOUND when the file does not
// exist and EUNPROCESSABLE when it exists but cannot be parsed — the
// verifier reports those as distinct issue kinds.
func (s *Store) ReadRecord(ctx context.Context, slug string, lang herbarium.Language) (*herbarium.Record, error) {
	data, err := os.ReadFile(s.recordPath(slug, lang))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, herbarium.Errorf(herbarium.ENOTFOUND, "no %s record for %q", lang, slug)
	} else if err != nil {
		return nil, err
	}

	rec, err := DecodeRecord(data)
	if err != nil {
		return nil, err
	}
	if rec.Slug == "" {
		rec.Slug = slug
	}
	return rec, nil
}

// Slugs lists every entity directory in the store, excluding the index
// file and hidden entries, in lexical order.
func (s *Store) Slugs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var slugs []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		slugs = append(slugs, e.Name())
	}
	return slugs, nil
}

// Languages lists the languages present for one entity, baseline first.
func (s *Store) Languages(ctx context.Context, slug string) ([]herbarium.Language, error) {
	var langs []herbarium.Language
	for _, lang := range herbarium.Languages() {
		if _, err := os.Stat(s.recordPath(slug, lang)); err == nil {
			langs = append(langs, lang)
		}
	}
	return langs, nil
}

// WriteIndex regenerates the top-level index by scanning the baseline
// record of every entity directory. Entities whose baseline record has no
// category are counted in the total but excluded from per-category counts.
func (s *Store) WriteIndex(ctx context.Context) (*herbarium.Index, error) {
	slugs, err := s.Slugs(ctx)
	if err != nil {
		return nil, err
	}

	idx := &herbarium.Index{
		Categories:  make(map[herbarium.Category]int),
		GeneratedAt: time.Now().UTC(),
	}

	for _, slug := range slugs {
		idx.Total++

		rec, err := s.ReadRecord(ctx, slug, herbarium.BaselineLanguage)
		if err != nil {
			continue
		}
		if rec.Category != "" {
			idx.Categories[rec.Category]++
		}
	}

	data, err := goyaml.Marshal(idx)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(s.baseDir, IndexFile), data, 0o644); err != nil {
		return nil, err
	}

	return idx, nil
}
