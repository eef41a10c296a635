package evalparse

import (
	"regexp"
	"strings"
)

// Category lines appear in two generator formats that never mix within one
// text. Both sub-patterns are scanned independently and concatenated.
var (
	// Numbered-list format: "1. Anamnese: 10/20", ordinal optionally
	// wrapped in emphasis markers ("**1.** Anamnese: 10/20").
	numberedCategoryRe = regexp.MustCompile(
		`(?m)^[ \t]*[*_]*\d+[.)][*_]*[ \t]+([^:\n]+?)[ \t]*:` + numPair)

	// Icon-prefixed format: "🩺 Anamnese: 10/20 (50%)". The trailing
	// percentage is optional; when present the recomputed value from
	// score/max stays authoritative (the source occasionally rounds
	// differently).
	iconCategoryRe = regexp.MustCompile(
		`(?m)^[ \t]*(?:[\p{So}\x{FE0F}][ \t]*)+([^:\n]+?)[ \t]*:` + numPair +
			`(?:[ \t]*\(\d+[ \t]*%\))?`)
)

// extractCategories returns all category tuples in order of appearance,
// numbered-format matches first. Names are trimmed of surrounding
// whitespace and emphasis/colon markup.
func extractCategories(text string) []Category {
	cats := []Category{}
	for _, re := range []*regexp.Regexp{numberedCategoryRe, iconCategoryRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.Trim(m[1], "*_: \t")
			if name == "" {
				continue
			}
			score := parseNum(m[2])
			max := parseNum(m[3])
			cats = append(cats, Category{
				Name:       name,
				Score:      score,
				Max:        max,
				Percentage: percentage(score, max),
			})
		}
	}
	return cats
}
