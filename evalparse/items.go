package evalparse

import (
	"regexp"
	"strings"
)

// bulletPrefixRe recognizes a list-item prefix after trimming: a plain
// bullet glyph followed by whitespace, a "<n>." / "<n>)" numbered prefix,
// or one of the emoji the generator uses as informal bullets. A bare "*"
// only counts with trailing whitespace so bold runs ("**Text**") are not
// mistaken for bullets.
var bulletPrefixRe = regexp.MustCompile(
	`^(?:[-*•‣▪·][ \t]+|\d+[.)][ \t]+|(?:[\p{So}\x{FE0F}][ \t]*)+)`)

// extractListItems splits a section span into list items. The bullet or
// number prefix is stripped, as is emphasis markup at the start of the
// remaining text; inline emphasis further into the sentence is display
// text and stays verbatim. Lines empty after stripping are discarded, so
// the result never contains blank items.
func extractListItems(section string, ok bool) []string {
	items := []string{}
	if !ok {
		return items
	}
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		prefix := bulletPrefixRe.FindString(line)
		if prefix == "" {
			continue
		}
		item := strings.TrimSpace(line[len(prefix):])
		item = strings.TrimSpace(strings.TrimLeft(item, "*_"))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
