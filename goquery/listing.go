package goquery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/herbarium"
)

// productPathFragment identifies shop-item URLs in every locale: item
// permalinks are /product/<slug>/, /zh-hant/product/<slug>/ and
// /zh-hans/product/<slug>/.
const productPathFragment = "/product/"

// resultCountPatterns parse the localized "showing N results" phrase, in
// lookup order: English phrasing first, then the Traditional and Simplified
// spellings the theme renders for the CJK locales.
var resultCountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)showing(?:\s+\S+)*?\s+(?:of|all)\s+(\d+)\s+results`),
	regexp.MustCompile(`共\s*(\d+)\s*項`),
	regexp.MustCompile(`共\s*(\d+)\s*项`),
}

// Ensure ListingParser implements herbarium.ListingParser at compile time.
var _ herbarium.ListingParser = (*ListingParser)(nil)

// ListingParser reads category listing pages.
type ListingParser struct{}

// NewListingParser creates a new ListingParser.
func NewListingParser() *ListingParser {
	return &ListingParser{}
}

// ItemURLs returns the product URLs linked from a listing page in document
// order, deduplicated by exact URL string. Relative hrefs are resolved
// against baseURL and external hosts are filtered out.
func (p *ListingParser) ItemURLs(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, herbarium.Errorf(herbarium.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, herbarium.Errorf(herbarium.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var urls []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)

		if resolved.Host != base.Host {
			return
		}
		if !strings.Contains(resolved.Path, productPathFragment) {
			return
		}

		u := resolved.String()
		if seen[u] {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	})

	return urls, nil
}

// TotalCount parses the localized result-count phrase from the listing
// page. ok=false when no locale phrasing matches; the caller falls back to
// the first page's URL count, which may undercount on paginated listings.
func (p *ListingParser) TotalCount(html string) (int, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, false
	}

	// The count lives in the result-count element when the theme renders
	// one; fall back to the whole page text.
	text := doc.Find(".woocommerce-result-count").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}

	for _, re := range resultCountPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return n, true
		}
	}

	return 0, false
}
