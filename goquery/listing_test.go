package goquery_test

import (
	"testing"

	"github.com/fwojciec/herbarium/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `<html><body>
<p class="woocommerce-result-count">Showing 1–9 of 25 results</p>
<ul class="products">
  <li><a href="https://example.com/product/milk-thistle/">Milk Thistle</a></li>
  <li><a href="https://example.com/product/echinacea/">Echinacea</a></li>
  <li><a href="/product/ginseng/">Ginseng</a></li>
  <li><a href="https://example.com/product/milk-thistle/">Milk Thistle (duplicate)</a></li>
  <li><a href="https://othersite.com/product/spam/">External</a></li>
  <li><a href="https://example.com/cart/">Cart</a></li>
</ul>
</body></html>`

func TestListingParser_ItemURLs(t *testing.T) {
	t.Parallel()

	p := goquery.NewListingParser()

	urls, err := p.ItemURLs(listingPage, "https://example.com/product-category/western-herbs/")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com/product/milk-thistle/",
		"https://example.com/product/echinacea/",
		"https://example.com/product/ginseng/",
	}, urls)
}

func TestListingParser_ItemURLs_LocalePaths(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<a href="/zh-hant/product/milk-thistle/">奶薊</a>
<a href="/zh-hans/product/calcium/">钙</a>
</body></html>`

	p := goquery.NewListingParser()

	urls, err := p.ItemURLs(html, "https://example.com/zh-hant/product-category/western-herbs/")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com/zh-hant/product/milk-thistle/",
		"https://example.com/zh-hans/product/calcium/",
	}, urls)
}

func TestListingParser_TotalCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		html   string
		want   int
		wantOK bool
	}{
		{
			name:   "english range phrasing",
			html:   listingPage,
			want:   25,
			wantOK: true,
		},
		{
			name:   "english single page phrasing",
			html:   `<p class="woocommerce-result-count">Showing all 8 results</p>`,
			want:   8,
			wantOK: true,
		},
		{
			name:   "traditional chinese phrasing",
			html:   `<p class="woocommerce-result-count">顯示第 1–9 項結果，共 25 項</p>`,
			want:   25,
			wantOK: true,
		},
		{
			name:   "simplified chinese phrasing",
			html:   `<p class="woocommerce-result-count">显示第 1–9 项结果（共 25 项）</p>`,
			want:   25,
			wantOK: true,
		},
		{
			name:   "no phrasing matches",
			html:   `<p>Welcome to our shop</p>`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := goquery.NewListingParser()

			n, ok := p.TotalCount(tt.html)

			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, n)
			}
		})
	}
}
