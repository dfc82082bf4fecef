package herbarium

import "strings"

// headingRule maps heading keywords to a canonical field. A rule matches
// when the lower-cased heading contains the English keyword or any of the
// CJK variants (Traditional and Simplified spellings of the same concept).
type headingRule struct {
	field   Field
	english string
	cjk     []string
}

// headingRules is the ordered classification table. Order matters: more
// specific keywords must precede their prefixes ("modern research" before
// "modern", "food source" before "source").
var headingRules = []headingRule{
	{FieldHistory, "history", []string{"歷史", "历史"}},
	{FieldIntroduction, "introduction", []string{"簡介", "简介", "介紹", "介绍"}},
	{FieldTraditionalUsage, "traditional", []string{"傳統", "传统"}},
	{FieldModernResearch, "modern research", []string{"現代研究", "现代研究"}},
	{FieldModernUsage, "modern", []string{"現代", "现代"}},
	{FieldFunctions, "function", []string{"功能", "功效"}},
	{FieldBotanicalSource, "botanical", []string{"植物來源", "植物来源"}},
	{FieldFoodSources, "food source", []string{"食物來源", "食物来源"}},
	{FieldImportance, "importance", []string{"重要性"}},
	{FieldPrecautions, "precaution", []string{"注意事項", "注意事项", "禁忌"}},
	{FieldDosage, "dosage", []string{"劑量", "剂量", "用量"}},
}

// ClassifyHeading maps a loosely-titled section heading to its canonical
// field by case-insensitive substring match against the ordered keyword
// table; the first matching rule wins. Unrecognized headings return
// ok=false and are dropped by callers rather than stored under an arbitrary
// key.
func ClassifyHeading(heading string) (Field, bool) {
	lower := strings.ToLower(strings.TrimSpace(heading))
	if lower == "" {
		return "", false
	}

	for _, rule := range headingRules {
		if strings.Contains(lower, rule.english) {
			return rule.field, true
		}
		for _, variant := range rule.cjk {
			if strings.Contains(lower, variant) {
				return rule.field, true
			}
		}
	}

	return "", false
}
