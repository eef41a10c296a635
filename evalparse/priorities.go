package evalparse

import (
	"regexp"
	"strings"
)

// Priority markers: the colored circle glyphs the generator uses for
// triage levels.
const (
	markerUrgent    = "\U0001F534" // red circle
	markerImportant = "\U0001F7E1" // yellow circle
	markerOptional  = "\U0001F7E2" // green circle
)

// priorityRegex compiles one level's scan: the marker glyph, any of the
// bilingual labels, a colon, then the action as the rest of the line.
func priorityRegex(marker string, labels []string) *regexp.Regexp {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	return regexp.MustCompile(
		`(?mi)^[ \t]*(?:[-*•][ \t]+)?` + regexp.QuoteMeta(marker) + `\x{FE0F}?` +
			`[ \t]*[*_]*(?:` + strings.Join(quoted, "|") + `)[*_]*[ \t]*:[ \t]*(.+)$`)
}

// extractPriorities runs three independent global scans, one per level.
// The result is grouped by level (all urgent items, then important, then
// optional) rather than by position in the text; downstream consumers
// depend on that grouping, so it is kept even though it falls out of the
// scan order rather than a product decision.
func (p *Parser) extractPriorities(text string) []Priority {
	priorities := []Priority{}
	for _, scan := range p.prioRes {
		for _, m := range scan.re.FindAllStringSubmatch(text, -1) {
			action := strings.TrimSpace(m[1])
			action = strings.TrimSpace(strings.Trim(action, "*_"))
			if action == "" {
				continue
			}
			priorities = append(priorities, Priority{Level: scan.level, Action: action})
		}
	}
	return priorities
}

type prioScan struct {
	level Level
	re    *regexp.Regexp
}
