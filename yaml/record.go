// Package yaml provides the YAML-based content store: one document per
// (entity, language), a generated top-level index, and the staged variant
// used by full re-scrapes.
package yaml

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/herbarium"
	goyaml "gopkg.in/yaml.v3"
)

// EncodeRecord serializes a record with a fixed key order: identity fields
// first, then present content fields in canonical order, then metadata.
// A header comment carries the title, source URL and language for anyone
// reading the store by hand.
func EncodeRecord(rec *herbarium.Record) ([]byte, error) {
	root := &goyaml.Node{Kind: goyaml.MappingNode}
	root.HeadComment = fmt.Sprintf("%s\nSource: %s\nLanguage: %s",
		rec.Title, rec.Metadata.SourceURL, rec.Metadata.Language)

	addScalar(root, "id", rec.ID)
	addScalar(root, "slug", rec.Slug)
	addScalar(root, "category", string(rec.Category))
	addScalar(root, "title", rec.Title)
	if rec.ScientificName != "" {
		addScalar(root, "scientific_name", rec.ScientificName)
	}
	addScalar(root, "image", rec.Image)

	for _, f := range rec.PresentFields() {
		addScalar(root, string(f), strings.TrimSpace(rec.Sections[f]))
	}

	meta := &goyaml.Node{Kind: goyaml.MappingNode}
	addScalar(meta, "source", rec.Metadata.Source)
	addScalar(meta, "source_url", rec.Metadata.SourceURL)
	addScalar(meta, "scraped_at", rec.Metadata.ScrapedAt.UTC().Format(time.RFC3339))
	addScalar(meta, "language", string(rec.Metadata.Language))
	if rec.Metadata.ContentHash != "" {
		addScalar(meta, "content_hash", rec.Metadata.ContentHash)
	}
	root.Content = append(root.Content,
		&goyaml.Node{Kind: goyaml.ScalarNode, Value: "metadata"}, meta)

	var buf bytes.Buffer
	enc := goyaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// addScalar appends a key/value pair to a mapping node. Multi-line values
// use literal block style so section text stays readable in the store.
func addScalar(m *goyaml.Node, key, value string) {
	val := &goyaml.Node{Kind: goyaml.ScalarNode, Value: value}
	if strings.Contains(value, "\n") {
		val.Style = goyaml.LiteralStyle
	}
	m.Content = append(m.Content,
		&goyaml.Node{Kind: goyaml.ScalarNode, Value: key}, val)
}

// yamlRecord is the fixed-key half of a stored document.
type yamlRecord struct {
	ID             string `yaml:"id"`
	Slug           string `yaml:"slug"`
	Category       string `yaml:"category"`
	Title          string `yaml:"title"`
	ScientificName string `yaml:"scientific_name"`
	Image          string `yaml:"image"`
	Metadata       struct {
		Source      string    `yaml:"source"`
		SourceURL   string    `yaml:"source_url"`
		ScrapedAt   time.Time `yaml:"scraped_at"`
		Language    string    `yaml:"language"`
		ContentHash string    `yaml:"content_hash"`
	} `yaml:"metadata"`
}

// DecodeRecord parses a stored document. Content sections live as top-level
// keys, so the document is read twice: once for the fixed keys and once as
// a generic mapping from which canonical fields are picked. Unknown keys
// are ignored — older store variants persisted unrecognized headings under
// raw lower-cased keys, and readers must tolerate them.
func DecodeRecord(data []byte) (*herbarium.Record, error) {
	var fixed yamlRecord
	if err := goyaml.Unmarshal(data, &fixed); err != nil {
		return nil, herbarium.Errorf(herbarium.EUNPROCESSABLE, "malformed record: %v", err)
	}

	var raw map[string]any
	if err := goyaml.Unmarshal(data, &raw); err != nil {
		return nil, herbarium.Errorf(herbarium.EUNPROCESSABLE, "malformed record: %v", err)
	}

	sections := make(map[herbarium.Field]string)
	for _, f := range herbarium.CanonicalFields() {
		if v, ok := raw[string(f)].(string); ok && strings.TrimSpace(v) != "" {
			sections[f] = strings.TrimSpace(v)
		}
	}

	return &herbarium.Record{
		ID:             fixed.ID,
		Slug:           fixed.Slug,
		Category:       herbarium.Category(fixed.Category),
		Title:          fixed.Title,
		ScientificName: fixed.ScientificName,
		Image:          fixed.Image,
		Sections:       sections,
		Metadata: herbarium.Metadata{
			Source:      fixed.Metadata.Source,
			SourceURL:   fixed.Metadata.SourceURL,
			ScrapedAt:   fixed.Metadata.ScrapedAt,
			Language:    herbarium.Language(fixed.Metadata.Language),
			ContentHash: fixed.Metadata.ContentHash,
		},
	}, nil
}
