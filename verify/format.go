package verify

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fwojciec/herbarium"
)

// ANSI escape sequences for the console formatter.
const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// FormatConsole writes a human-readable verification summary. When color is
// set the summary uses ANSI escapes: green for complete, red for errors,
// yellow for informational findings.
func FormatConsole(w io.Writer, report *herbarium.StoreReport, color bool) {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + ansiReset
	}

	fmt.Fprintf(w, "Verified %d entities: %s, %s\n",
		report.TotalEntities,
		paint(ansiGreen, fmt.Sprintf("%d complete", report.CompleteEntities)),
		paint(ansiRed, fmt.Sprintf("%d incomplete", report.IncompleteEntities)))

	fmt.Fprint(w, "Language coverage:")
	for i, lang := range herbarium.Languages() {
		if i > 0 {
			fmt.Fprint(w, ",")
		}
		fmt.Fprintf(w, " %s %d%% (%d)", lang, report.LanguageCoverage[lang], report.LanguagePresence[lang])
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Missing fields: %d\n", report.TotalInconsistencies)

	for _, entity := range report.Incomplete() {
		fmt.Fprintf(w, "\n%s", entity.Slug)
		if entity.Title != "" {
			fmt.Fprintf(w, " (%s)", entity.Title)
		}
		fmt.Fprintln(w)
		for _, lang := range entity.MissingLanguages {
			fmt.Fprintf(w, "  %s: %s\n", lang, paint(ansiRed, "file missing"))
		}
		for _, lang := range entity.ParseFailures {
			fmt.Fprintf(w, "  %s: %s\n", lang, paint(ansiRed, "parse failure"))
		}
		for _, lang := range herbarium.Languages() {
			if fields := entity.MissingFields[lang]; len(fields) > 0 {
				fmt.Fprintf(w, "  %s: missing %s\n", lang, paint(ansiRed, joinFields(fields)))
			}
		}
		for _, lang := range herbarium.Languages() {
			if fields := entity.ExtraFields[lang]; len(fields) > 0 {
				fmt.Fprintf(w, "  %s: extra %s\n", lang, paint(ansiYellow, joinFields(fields)))
			}
		}
	}

	if rows := missingBreakdown(report); len(rows) > 0 {
		fmt.Fprintln(w, "\nMost missing:")
		for _, row := range rows {
			fmt.Fprintf(w, "  %s %s: %d\n", row.key.Language, row.key.Field, row.count)
		}
	}
}

// FormatMarkdown writes the verification report as a markdown document,
// suitable for committing alongside the content store.
func FormatMarkdown(w io.Writer, report *herbarium.StoreReport) {
	fmt.Fprintln(w, "# Content Verification Report")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Entities: %d\n", report.TotalEntities)
	fmt.Fprintf(w, "- Complete: %d\n", report.CompleteEntities)
	fmt.Fprintf(w, "- Incomplete: %d\n", report.IncompleteEntities)
	fmt.Fprintf(w, "- Missing fields: %d\n", report.TotalInconsistencies)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Language Coverage")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Language | Files | Coverage |")
	fmt.Fprintln(w, "| --- | ---: | ---: |")
	for _, lang := range herbarium.Languages() {
		fmt.Fprintf(w, "| %s | %d | %d%% |\n", lang, report.LanguagePresence[lang], report.LanguageCoverage[lang])
	}

	incomplete := report.Incomplete()
	if len(incomplete) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "## Incomplete Entities")
	fmt.Fprintln(w)
	for _, entity := range incomplete {
		fmt.Fprintf(w, "### %s\n\n", entity.Slug)
		if entity.Title != "" {
			fmt.Fprintf(w, "%s — %s\n\n", entity.Title, entity.SourceURL)
		}
		for _, lang := range entity.MissingLanguages {
			fmt.Fprintf(w, "- `%s`: file missing\n", lang)
		}
		for _, lang := range entity.ParseFailures {
			fmt.Fprintf(w, "- `%s`: parse failure\n", lang)
		}
		for _, lang := range herbarium.Languages() {
			if fields := entity.MissingFields[lang]; len(fields) > 0 {
				fmt.Fprintf(w, "- `%s`: missing %s\n", lang, joinFields(fields))
			}
		}
		for _, lang := range herbarium.Languages() {
			if fields := entity.ExtraFields[lang]; len(fields) > 0 {
				fmt.Fprintf(w, "- `%s`: extra %s\n", lang, joinFields(fields))
			}
		}
		fmt.Fprintln(w)
	}
}

// FormatJSON writes the report as indented JSON.
func FormatJSON(w io.Writer, report *herbarium.StoreReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

type breakdownRow struct {
	key   herbarium.LanguageFieldKey
	count int
}

// missingBreakdown orders the missing-by-(language, field) counts, highest
// first, ties by language then field for stable output.
func missingBreakdown(report *herbarium.StoreReport) []breakdownRow {
	rows := make([]breakdownRow, 0, len(report.MissingByLanguageField))
	for key, count := range report.MissingByLanguageField {
		rows = append(rows, breakdownRow{key: key, count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		if rows[i].key.Language != rows[j].key.Language {
			return rows[i].key.Language < rows[j].key.Language
		}
		return rows[i].key.Field < rows[j].key.Field
	})
	return rows
}

func joinFields(fields []herbarium.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
