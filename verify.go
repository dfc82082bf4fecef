package herbarium

// IssueKind classifies a schema-consistency finding.
type IssueKind string

// Issue kinds. MissingField is the only error-level kind: a field present
// in the baseline record but absent in a translation. ExtraField is
// informational and never affects completeness. ParseFailure marks a file
// that exists but cannot be decoded, which is distinct from a missing file.
const (
	IssueMissingField IssueKind = "missing_field"
	IssueExtraField   IssueKind = "extra_field"
	IssueParseFailure IssueKind = "parse_failure"
)

// FieldIssue is one consistency finding for one (entity, language, field).
type FieldIssue struct {
	Slug     string    `json:"slug"`
	Language Language  `json:"language"`
	Field    Field     `json:"field"`
	Kind     IssueKind `json:"kind"`
}

// EntityReport describes one entity's consistency state. This is the exact
// shape consumed by the reporting layer.
type EntityReport struct {
	Slug             string               `json:"slug"`
	Title            string               `json:"title"`
	SourceURL        string               `json:"source_url"`
	MissingLanguages []Language           `json:"missing_languages,omitempty"`
	ParseFailures    []Language           `json:"parse_failures,omitempty"`
	MissingFields    map[Language][]Field `json:"missing_fields,omitempty"`
	ExtraFields      map[Language][]Field `json:"extra_fields,omitempty"`

	// Issues is the flat finding list: exactly one issue per
	// (language, field) pair, plus one field-less issue per parse
	// failure. The grouped maps above are derived views of the same
	// findings.
	Issues []FieldIssue `json:"issues,omitempty"`

	Complete bool `json:"complete"`
}

// LanguageFieldKey groups missing-field counts by (language, field).
type LanguageFieldKey struct {
	Language Language `json:"language"`
	Field    Field    `json:"field"`
}

// StoreReport aggregates a verification pass over the whole store.
type StoreReport struct {
	TotalEntities      int `json:"total_entities"`
	CompleteEntities   int `json:"complete_entities"`
	IncompleteEntities int `json:"incomplete_entities"`

	// LanguagePresence counts entities that have a file for the
	// language, whether or not its fields are consistent.
	LanguagePresence map[Language]int `json:"language_presence"`

	// LanguageCoverage is presence as a rounded percentage of
	// TotalEntities.
	LanguageCoverage map[Language]int `json:"language_coverage"`

	// TotalInconsistencies counts missing_field issues only.
	TotalInconsistencies int `json:"total_inconsistencies"`

	MissingByLanguageField map[LanguageFieldKey]int `json:"-"`

	Entities []EntityReport `json:"entities"`
}

// Incomplete returns the entity reports that are not complete, in store
// order.
func (r *StoreReport) Incomplete() []EntityReport {
	var out []EntityReport
	for _, e := range r.Entities {
		if !e.Complete {
			out = append(out, e)
		}
	}
	return out
}

// CompareFields diffs a translation's present-field set against the
// baseline's. Fields present in baseline but absent in other are missing
// (error level); the converse are extra (informational). Each field
// appears at most once per diff.
func CompareFields(baseline, other *Record) (missing, extra []Field) {
	for _, f := range CanonicalFields() {
		switch {
		case baseline.Present(f) && !other.Present(f):
			missing = append(missing, f)
		case !baseline.Present(f) && other.Present(f):
			extra = append(extra, f)
		}
	}
	return missing, extra
}
