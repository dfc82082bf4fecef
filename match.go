package herbarium

import "strings"

// NormalizeScientificName canonicalizes a botanical name for index lookups:
// lowercase, everything but letters and spaces stripped, whitespace runs
// collapsed to single spaces.
func NormalizeScientificName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n':
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// BaselineIndex holds the baseline-language records of one run, keyed for
// cross-language matching. It is built once per run, passed by reference,
// and only read during the matching phase.
type BaselineIndex struct {
	bySlug    map[string]*Record
	bySciName map[string]string // normalized scientific name → slug
}

// NewBaselineIndex returns an empty index.
func NewBaselineIndex() *BaselineIndex {
	return &BaselineIndex{
		bySlug:    make(map[string]*Record),
		bySciName: make(map[string]string),
	}
}

// Add registers a baseline record under its slug and, when a scientific
// name is present, under the normalized name as well.
func (ix *BaselineIndex) Add(rec *Record) {
	ix.bySlug[rec.Slug] = rec
	if norm := NormalizeScientificName(rec.ScientificName); norm != "" {
		ix.bySciName[norm] = rec.Slug
	}
}

// BySlug returns the baseline record for a slug, or nil.
func (ix *BaselineIndex) BySlug(slug string) *Record {
	return ix.bySlug[slug]
}

// BySciName returns the slug indexed under a normalized scientific name.
func (ix *BaselineIndex) BySciName(norm string) (string, bool) {
	slug, ok := ix.bySciName[norm]
	return slug, ok
}

// Records returns all baseline records in unspecified order.
func (ix *BaselineIndex) Records() []*Record {
	recs := make([]*Record, 0, len(ix.bySlug))
	for _, rec := range ix.bySlug {
		recs = append(recs, rec)
	}
	return recs
}

// Len returns the number of indexed entities.
func (ix *BaselineIndex) Len() int {
	return len(ix.bySlug)
}

// MatchStrategy attempts to resolve a non-baseline candidate record to a
// baseline slug. Strategies are pure: they read the index and never mutate
// it.
type MatchStrategy struct {
	Name  string
	Match func(candidate *Record, ix *BaselineIndex) (slug string, ok bool)
}

// MatchStrategies returns the matching cascade in strict precision order.
// Scientific name is the least ambiguous signal and title containment the
// most prone to false positives, so the ordering trades recall for
// precision: the first strategy to succeed wins and later ones are never
// consulted.
func MatchStrategies() []MatchStrategy {
	return []MatchStrategy{
		{Name: "scientific-name-exact", Match: matchSciNameExact},
		{Name: "scientific-name-partial", Match: matchSciNamePartial},
		{Name: "image-filename", Match: matchImageFilename},
		{Name: "title-containment", Match: matchTitleContainment},
	}
}

// MatchBaseline runs the full cascade for a candidate record. Returns
// ok=false when every strategy is exhausted; the caller drops the record
// and reports it for manual follow-up.
func MatchBaseline(candidate *Record, ix *BaselineIndex) (string, bool) {
	for _, s := range MatchStrategies() {
		if slug, ok := s.Match(candidate, ix); ok {
			return slug, true
		}
	}
	return "", false
}

func matchSciNameExact(candidate *Record, ix *BaselineIndex) (string, bool) {
	norm := NormalizeScientificName(candidate.ScientificName)
	if norm == "" {
		return "", false
	}
	return ix.BySciName(norm)
}

// matchSciNamePartial handles cultivar and variety suffixes: either
// normalized name being a substring of the other counts as a match.
func matchSciNamePartial(candidate *Record, ix *BaselineIndex) (string, bool) {
	norm := NormalizeScientificName(candidate.ScientificName)
	if norm == "" {
		return "", false
	}
	for _, rec := range ix.Records() {
		base := NormalizeScientificName(rec.ScientificName)
		if base == "" {
			continue
		}
		if strings.Contains(base, norm) || strings.Contains(norm, base) {
			return rec.Slug, true
		}
	}
	return "", false
}

// matchImageFilename derives a slug from the candidate's own image URL with
// the same algorithm used for baseline slug assignment. The source site
// reuses image assets across locale pages, so an existing baseline slug is
// a direct hit.
func matchImageFilename(candidate *Record, ix *BaselineIndex) (string, bool) {
	slug := SlugFromImageURL(candidate.ImageURL)
	if slug == "" {
		return "", false
	}
	if ix.BySlug(slug) != nil {
		return slug, true
	}
	return "", false
}

// matchTitleContainment handles localized titles that embed the baseline
// title, e.g. "Calcium (鈣)". As a secondary check the candidate title is
// compared against the baseline slug with hyphens replaced by spaces.
func matchTitleContainment(candidate *Record, ix *BaselineIndex) (string, bool) {
	title := strings.ToLower(strings.TrimSpace(candidate.Title))
	if title == "" {
		return "", false
	}
	for _, rec := range ix.Records() {
		base := strings.ToLower(strings.TrimSpace(rec.Title))
		if base != "" && (strings.Contains(title, base) || strings.Contains(base, title)) {
			return rec.Slug, true
		}
		if spaced := strings.ReplaceAll(rec.Slug, "-", " "); spaced != "" && strings.Contains(title, spaced) {
			return rec.Slug, true
		}
	}
	return "", false
}
