// Package crawl provides catalog crawling orchestration. It coordinates
// paginated URL discovery, page extraction, cross-language matching and
// storage of product records, one language pass at a time.
package crawl

import (
	"fmt"
	"strings"

	"github.com/fwojciec/herbarium"
)

// DefaultBaseURL is the source catalog origin.
const DefaultBaseURL = "https://www.herbscentury.com"

// localePrefixes maps each catalog language to its site path prefix.
// English pages live at the root.
var localePrefixes = map[herbarium.Language]string{
	herbarium.LangEN:   "",
	herbarium.LangZHHK: "zh-hant",
	herbarium.LangZHCN: "zh-hans",
}

// categorySlugs maps catalog categories to their listing path slugs.
// The site keeps the same slugs across locales, under the locale prefix.
var categorySlugs = map[herbarium.Category]string{
	herbarium.CategoryHerbs:     "western-herbs",
	herbarium.CategoryVitamins:  "vitamins",
	herbarium.CategoryMinerals:  "minerals",
	herbarium.CategoryNutrients: "nutrients",
}

// Site describes the source catalog origin.
type Site struct {
	BaseURL string
}

// NewSite creates a Site, defaulting to DefaultBaseURL when baseURL is
// empty.
func NewSite(baseURL string) Site {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Site{BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// ListingURL returns the listing page URL for a category, language and
// 1-based page number. Page 1 is the bare category path; later pages use
// the numbered pagination path.
func (s Site) ListingURL(cat herbarium.Category, lang herbarium.Language, page int) string {
	var sb strings.Builder
	sb.WriteString(s.BaseURL)
	if prefix := localePrefixes[lang]; prefix != "" {
		sb.WriteString("/")
		sb.WriteString(prefix)
	}
	fmt.Fprintf(&sb, "/product-category/%s/", categorySlugs[cat])
	if page > 1 {
		fmt.Fprintf(&sb, "page/%d/", page)
	}
	return sb.String()
}

// LocalizeURL rewrites a baseline product URL into its equivalent for
// another language by substituting the locale path segment. Used by the
// repair flow to re-fetch a translation from the baseline record's source
// URL.
func (s Site) LocalizeURL(baselineURL string, lang herbarium.Language) string {
	prefix := localePrefixes[lang]
	if prefix == "" {
		return baselineURL
	}
	return strings.Replace(baselineURL, "/product/", "/"+prefix+"/product/", 1)
}
