package goquery

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/herbarium"
)

// minSectionLength is the shortest cleaned content block worth keeping,
// measured in runes so Chinese text counts per character rather than per
// byte. Anything shorter is layout noise or an empty toggle.
const minSectionLength = 10

// siteNameSuffixes are the page-title suffixes the source site appends in
// each locale, stripped from og:title before use.
var siteNameSuffixes = []string{
	"Herbs Century",
	"草本世紀",
	"草本世纪",
}

// Ensure ProductExtractor implements herbarium.Extractor at compile time.
var _ herbarium.Extractor = (*ProductExtractor)(nil)

// ProductExtractor parses a product page into a structured record. It is
// selector-directed: the source site renders every product with the same
// page-builder structure, so fields come from fixed metadata and element
// positions rather than generic content extraction.
type ProductExtractor struct{}

// NewProductExtractor creates a new ProductExtractor.
func NewProductExtractor() *ProductExtractor {
	return &ProductExtractor{}
}

// Extract processes raw product-page HTML fetched from sourceURL.
// Returns EUNPROCESSABLE when the page has no usable title; callers skip
// such pages. The record comes back without a slug or language: the crawler
// assigns those.
func (e *ProductExtractor) Extract(html string, sourceURL string) (*herbarium.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, herbarium.Errorf(herbarium.EINVALID, "failed to parse HTML: %v", err)
	}

	title := e.extractTitle(doc)
	if title == "" {
		return nil, herbarium.Errorf(herbarium.EUNPROCESSABLE, "no title metadata in %s", sourceURL)
	}

	rec := &herbarium.Record{
		Title:          title,
		ScientificName: e.extractScientificName(doc),
		ImageURL:       e.extractImageURL(doc),
		Category:       herbarium.CategoryFromURL(sourceURL),
		Sections:       e.extractSections(doc),
		Metadata: herbarium.Metadata{
			Source:    hostOf(sourceURL),
			SourceURL: sourceURL,
			ScrapedAt: time.Now().UTC(),
		},
	}

	return rec, nil
}

// extractTitle reads the social-preview title and strips the site-name
// suffix in any locale.
func (e *ProductExtractor) extractTitle(doc *goquery.Document) string {
	title, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}

	for _, suffix := range siteNameSuffixes {
		for _, sep := range []string{" – ", " - ", " | "} {
			title = strings.TrimSuffix(title, sep+suffix)
		}
	}

	return strings.TrimSpace(title)
}

// extractScientificName reads the styled latin-name heading under the
// product summary. Absence is not an error: minerals and nutrients have no
// botanical name.
func (e *ProductExtractor) extractScientificName(doc *goquery.Document) string {
	for _, selector := range []string{"h2.product-latin-name", ".product-summary h2 em", ".entry-summary h2 em"} {
		if name := strings.TrimSpace(doc.Find(selector).First().Text()); name != "" {
			return name
		}
	}
	return ""
}

// extractImageURL prefers the social-preview image and falls back to the
// WooCommerce product image element.
func (e *ProductExtractor) extractImageURL(doc *goquery.Document) string {
	if src, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}
	if src, ok := doc.Find("img.wp-post-image").First().Attr("src"); ok {
		return strings.TrimSpace(src)
	}
	return ""
}

// extractSections walks the repeated heading-block/content-block pattern,
// cleans each block to plain text, and classifies headings into the
// canonical taxonomy. Unrecognized headings and blocks shorter than
// minSectionLength are dropped.
func (e *ProductExtractor) extractSections(doc *goquery.Document) map[herbarium.Field]string {
	sections := make(map[herbarium.Field]string)

	add := func(heading string, contentHTML string) {
		field, ok := herbarium.ClassifyHeading(heading)
		if !ok {
			return
		}
		content := CleanText(contentHTML)
		if utf8.RuneCountInString(content) < minSectionLength {
			return
		}
		if _, exists := sections[field]; exists {
			return // first block wins
		}
		sections[field] = content
	}

	// Primary pattern: page-builder toggles.
	doc.Find(".et_pb_toggle").Each(func(_ int, sel *goquery.Selection) {
		heading := sel.Find(".et_pb_toggle_title").First().Text()
		contentHTML, err := sel.Find(".et_pb_toggle_content").First().Html()
		if err != nil {
			return
		}
		add(heading, contentHTML)
	})

	if len(sections) > 0 {
		return sections
	}

	// Fallback: headings followed by sibling content until the next
	// heading, for products predating the page-builder layout.
	doc.Find(".entry-content h2, .entry-content h3").Each(func(_ int, sel *goquery.Selection) {
		var sb strings.Builder
		for sibling := sel.Next(); sibling.Length() > 0 && !sibling.Is("h2, h3"); sibling = sibling.Next() {
			if html, err := sibling.Html(); err == nil {
				sb.WriteString("<div>")
				sb.WriteString(html)
				sb.WriteString("</div>")
			}
		}
		add(sel.Text(), sb.String())
	})

	return sections
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
