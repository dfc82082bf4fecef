// Package verify implements schema verification and repair for the content
// store. The verifier is a read-only pass producing a StoreReport; the
// repairer consumes the same report to re-fetch and fill missing translation
// fields.
package verify

import (
	"context"
	"math"
	"sort"

	"github.com/fwojciec/herbarium"
)

// Verifier checks every entity in the store for cross-language schema
// consistency against the baseline record.
type Verifier struct {
	Records herbarium.RecordStore
}

// Run verifies the whole store. It never mutates anything: findings are
// report data, not errors. Only store access failures other than missing or
// undecodable records abort the pass.
func (v *Verifier) Run(ctx context.Context) (*herbarium.StoreReport, error) {
	slugs, err := v.Records.Slugs(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(slugs)

	report := &herbarium.StoreReport{
		TotalEntities:          len(slugs),
		LanguagePresence:       make(map[herbarium.Language]int),
		LanguageCoverage:       make(map[herbarium.Language]int),
		MissingByLanguageField: make(map[herbarium.LanguageFieldKey]int),
	}

	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entity, err := v.verifyEntity(ctx, slug, report)
		if err != nil {
			return nil, err
		}
		report.Entities = append(report.Entities, *entity)

		if entity.Complete {
			report.CompleteEntities++
		} else {
			report.IncompleteEntities++
		}
	}

	for _, lang := range herbarium.Languages() {
		report.LanguageCoverage[lang] = coveragePercent(report.LanguagePresence[lang], report.TotalEntities)
	}
	return report, nil
}

// verifyEntity builds the report for one slug and folds its findings into
// the store-level aggregates.
func (v *Verifier) verifyEntity(ctx context.Context, slug string, report *herbarium.StoreReport) (*herbarium.EntityReport, error) {
	entity := &herbarium.EntityReport{Slug: slug}

	records := make(map[herbarium.Language]*herbarium.Record)
	for _, lang := range herbarium.Languages() {
		rec, err := v.Records.ReadRecord(ctx, slug, lang)
		switch herbarium.ErrorCode(err) {
		case "":
			records[lang] = rec
			report.LanguagePresence[lang]++
		case herbarium.ENOTFOUND:
			entity.MissingLanguages = append(entity.MissingLanguages, lang)
		case herbarium.EUNPROCESSABLE:
			// The file exists but cannot be decoded. That still
			// counts as presence; the entity just cannot be
			// complete.
			entity.ParseFailures = append(entity.ParseFailures, lang)
			entity.Issues = append(entity.Issues, herbarium.FieldIssue{
				Slug: slug, Language: lang, Kind: herbarium.IssueParseFailure,
			})
			report.LanguagePresence[lang]++
		default:
			return nil, err
		}
	}

	baseline := records[herbarium.BaselineLanguage]
	if baseline != nil {
		entity.Title = baseline.Title
		entity.SourceURL = baseline.Metadata.SourceURL
	}

	for _, lang := range herbarium.Languages() {
		if lang == herbarium.BaselineLanguage {
			continue
		}
		rec := records[lang]
		if baseline == nil || rec == nil {
			continue
		}
		missing, extra := herbarium.CompareFields(baseline, rec)
		if len(missing) > 0 {
			if entity.MissingFields == nil {
				entity.MissingFields = make(map[herbarium.Language][]herbarium.Field)
			}
			entity.MissingFields[lang] = missing
			report.TotalInconsistencies += len(missing)
			for _, f := range missing {
				entity.Issues = append(entity.Issues, herbarium.FieldIssue{
					Slug: slug, Language: lang, Field: f, Kind: herbarium.IssueMissingField,
				})
				report.MissingByLanguageField[herbarium.LanguageFieldKey{Language: lang, Field: f}]++
			}
		}
		if len(extra) > 0 {
			if entity.ExtraFields == nil {
				entity.ExtraFields = make(map[herbarium.Language][]herbarium.Field)
			}
			entity.ExtraFields[lang] = extra
			for _, f := range extra {
				entity.Issues = append(entity.Issues, herbarium.FieldIssue{
					Slug: slug, Language: lang, Field: f, Kind: herbarium.IssueExtraField,
				})
			}
		}
	}

	entity.Complete = len(entity.MissingLanguages) == 0 &&
		len(entity.ParseFailures) == 0 &&
		len(entity.MissingFields) == 0
	return entity, nil
}

func coveragePercent(present, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}
