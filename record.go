package herbarium

import (
	"context"
	"strings"
	"time"
)

// Language identifies one of the catalog's site locales.
type Language string

// The three catalog languages. English is the baseline: its field set is
// the schema authority for consistency checks, and entity slugs are only
// ever assigned during an English pass.
const (
	LangEN   Language = "en"
	LangZHHK Language = "zh-HK"
	LangZHCN Language = "zh-CN"
)

// BaselineLanguage is the language whose present-field set is authoritative.
const BaselineLanguage = LangEN

// Languages returns the fixed set of catalog languages, baseline first.
func Languages() []Language {
	return []Language{LangEN, LangZHHK, LangZHCN}
}

// Valid reports whether l is one of the catalog languages.
func (l Language) Valid() bool {
	return l == LangEN || l == LangZHHK || l == LangZHCN
}

// Category classifies an entity by product type.
type Category string

// Catalog categories.
const (
	CategoryHerbs     Category = "herbs"
	CategoryVitamins  Category = "vitamins"
	CategoryMinerals  Category = "minerals"
	CategoryNutrients Category = "nutrients"
)

// Categories returns all catalog categories.
func Categories() []Category {
	return []Category{CategoryHerbs, CategoryVitamins, CategoryMinerals, CategoryNutrients}
}

// categoryFragments maps URL path fragments to categories. Fragments cover
// all three locale path spellings used by the source site.
var categoryFragments = []struct {
	fragment string
	category Category
}{
	{"/herbs", CategoryHerbs},
	{"western-herbs", CategoryHerbs},
	{"vitamin", CategoryVitamins},
	{"mineral", CategoryMinerals},
	{"nutrient", CategoryNutrients},
}

// CategoryFromURL infers the entity category from a product or listing URL
// by substring match against a fixed set of path fragments. An empty
// category is returned when no fragment matches; this is not fatal but the
// entity is excluded from per-category index counts.
func CategoryFromURL(rawURL string) Category {
	lower := strings.ToLower(rawURL)
	for _, cf := range categoryFragments {
		if strings.Contains(lower, cf.fragment) {
			return cf.category
		}
	}
	return ""
}

// Field names one canonical content section of a record.
type Field string

// Primary content fields.
const (
	FieldHistory          Field = "history"
	FieldIntroduction     Field = "introduction"
	FieldTraditionalUsage Field = "traditional_usage"
	FieldModernUsage      Field = "modern_usage"
	FieldFunctions        Field = "functions"
)

// Secondary optional content fields.
const (
	FieldBotanicalSource Field = "botanical_source"
	FieldModernResearch  Field = "modern_research"
	FieldImportance      Field = "importance"
	FieldFoodSources     Field = "food_sources"
	FieldPrecautions     Field = "precautions"
	FieldDosage          Field = "dosage"
)

// CanonicalFields returns all content fields in canonical document order.
func CanonicalFields() []Field {
	return []Field{
		FieldHistory,
		FieldIntroduction,
		FieldTraditionalUsage,
		FieldModernUsage,
		FieldFunctions,
		FieldBotanicalSource,
		FieldModernResearch,
		FieldImportance,
		FieldFoodSources,
		FieldPrecautions,
		FieldDosage,
	}
}

// Metadata carries record provenance.
type Metadata struct {
	Source      string    `yaml:"source"`
	SourceURL   string    `yaml:"source_url"`
	ScrapedAt   time.Time `yaml:"scraped_at"`
	Language    Language  `yaml:"language"`
	ContentHash string    `yaml:"content_hash,omitempty"`
}

// Record is one entity's content in one language. Exactly one record exists
// per (slug, language) at steady state. The slug is assigned once from the
// baseline language and is immutable; records in other languages must
// resolve to an existing baseline slug before they can be persisted.
type Record struct {
	ID             string
	Slug           string
	Category       Category
	Title          string
	ScientificName string
	Image          string // stored path relative to the entity directory
	ImageURL       string // remote image URL; not persisted
	Sections       map[Field]string
	Metadata       Metadata
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Slug == "" {
		return Errorf(EINVALID, "record slug required")
	}
	if r.Title == "" {
		return Errorf(EINVALID, "record title required")
	}
	if !r.Metadata.Language.Valid() {
		return Errorf(EINVALID, "unknown record language %q", r.Metadata.Language)
	}
	return nil
}

// Present reports whether a content field carries a non-empty trimmed value.
func (r *Record) Present(f Field) bool {
	return strings.TrimSpace(r.Sections[f]) != ""
}

// PresentFields returns the record's present content fields in canonical
// order.
func (r *Record) PresentFields() []Field {
	var fields []Field
	for _, f := range CanonicalFields() {
		if r.Present(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// RecordStore persists one document per (slug, language) plus a generated
// top-level index. Writes are whole-file overwrites.
type RecordStore interface {
	// WriteRecord persists the record under its slug and language,
	// overwriting any existing document.
	WriteRecord(ctx context.Context, rec *Record) error

	// ReadRecord loads one document.
	// Returns ENOTFOUND if the file does not exist and EUNPROCESSABLE if
	// it exists but cannot be parsed.
	ReadRecord(ctx context.Context, slug string, lang Language) (*Record, error)

	// Slugs lists every entity directory in the store, excluding the
	// index file and hidden entries.
	Slugs(ctx context.Context) ([]string, error)

	// Languages lists the languages present for one entity.
	Languages(ctx context.Context, slug string) ([]Language, error)

	// WriteIndex regenerates the top-level index by scanning the
	// baseline record of every entity directory.
	WriteIndex(ctx context.Context) (*Index, error)
}

// Index summarizes the content store.
type Index struct {
	Total       int              `yaml:"total"`
	Categories  map[Category]int `yaml:"categories"`
	GeneratedAt time.Time        `yaml:"generated_at"`
}

// ImageStore saves entity images alongside their records.
type ImageStore interface {
	// SaveImage downloads the image at url into the entity's images
	// directory and returns the stored path relative to the entity
	// directory.
	SaveImage(ctx context.Context, slug string, url string) (string, error)
}
