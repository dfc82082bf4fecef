// Package goquery provides CSS-selector based HTML parsing for product
// pages and category listings of the source catalog site.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	brRe        = regexp.MustCompile(`(?i)<br\s*/?>`)
	spaceRunRe  = regexp.MustCompile(`[ \t\x{00a0}]+`)
	blankRunsRe = regexp.MustCompile(`\n{3,}`)
)

// CleanText converts an HTML fragment to plain text: <br> elements become
// newlines, remaining markup is stripped, entities are decoded by the
// parser, horizontal whitespace runs collapse to single spaces, and runs of
// blank lines collapse to one. The result is trimmed.
func CleanText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	// Line breaks must survive tag stripping.
	fragment = brRe.ReplaceAllString(fragment, "\n")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	// Block elements end their line so adjacent paragraphs don't run
	// together after tag stripping.
	doc.Find("p, div, li").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	text := doc.Text()
	text = spaceRunRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankRunsRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
