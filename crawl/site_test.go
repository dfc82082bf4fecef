package crawl_test

import (
	"testing"

	"github.com/fwojciec/herbarium"
	"github.com/fwojciec/herbarium/crawl"
	"github.com/stretchr/testify/assert"
)

func TestSite_ListingURL(t *testing.T) {
	t.Parallel()

	site := crawl.NewSite("https://example.com/")

	tests := []struct {
		name string
		cat  herbarium.Category
		lang herbarium.Language
		page int
		want string
	}{
		{
			name: "baseline first page",
			cat:  herbarium.CategoryHerbs,
			lang: herbarium.LangEN,
			page: 1,
			want: "https://example.com/product-category/western-herbs/",
		},
		{
			name: "baseline later page",
			cat:  herbarium.CategoryVitamins,
			lang: herbarium.LangEN,
			page: 3,
			want: "https://example.com/product-category/vitamins/page/3/",
		},
		{
			name: "traditional chinese prefix",
			cat:  herbarium.CategoryMinerals,
			lang: herbarium.LangZHHK,
			page: 1,
			want: "https://example.com/zh-hant/product-category/minerals/",
		},
		{
			name: "simplified chinese with page",
			cat:  herbarium.CategoryNutrients,
			lang: herbarium.LangZHCN,
			page: 2,
			want: "https://example.com/zh-hans/product-category/nutrients/page/2/",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, site.ListingURL(tt.cat, tt.lang, tt.page))
		})
	}
}

func TestSite_LocalizeURL(t *testing.T) {
	t.Parallel()

	site := crawl.NewSite("https://example.com")
	baseURL := "https://example.com/product/milk-thistle/"

	assert.Equal(t, baseURL, site.LocalizeURL(baseURL, herbarium.LangEN))
	assert.Equal(t, "https://example.com/zh-hant/product/milk-thistle/", site.LocalizeURL(baseURL, herbarium.LangZHHK))
	assert.Equal(t, "https://example.com/zh-hans/product/milk-thistle/", site.LocalizeURL(baseURL, herbarium.LangZHCN))
}

func TestNewSite_Default(t *testing.T) {
	t.Parallel()

	assert.Equal(t, crawl.DefaultBaseURL, crawl.NewSite("").BaseURL)
}
