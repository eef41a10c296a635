package evalparse

import (
	"regexp"
	"strings"
)

// Heading grammar shared by every section synonym. A heading sits at a line
// start, optionally behind markdown markers (#, >, emphasis runs) and/or an
// emoji glyph — emphasis can come before or after the glyph
// ("✅ **RICHTIG GEMACHT**") — and is optionally followed by a colon that
// may itself be wrapped in emphasis markers ("**ZUSAMMENFASSUNG:**").
const (
	headingPrefix = `(?mi)^[ \t]*[#>]*[ \t]*[*_]*[ \t]*(?:[\p{So}\x{FE0F}][ \t]*)*[*_]*[ \t]*`
	headingSuffix = `[ \t]*[*_]*:?[*_]*`
)

// hrRe matches a horizontal-rule line, which delimits sections in both
// observed generator formats.
var hrRe = regexp.MustCompile(`(?m)^[ \t]*(?:-{3,}|\*{3,}|_{3,}|={3,})[ \t]*$`)

// headingRegex compiles the heading pattern for one synonym.
// A trailing ASCII word boundary keeps short synonyms (GESAMT) from
// matching inside longer headings (GESAMTEINDRUCK).
func headingRegex(synonym string) *regexp.Regexp {
	body := regexp.QuoteMeta(synonym)
	if isASCIIWord(lastRune(synonym)) {
		body += `\b`
	}
	return regexp.MustCompile(headingPrefix + body + headingSuffix)
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

func isASCIIWord(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

// locateSection finds the first synonym used as a heading and returns the
// text span from just after the heading up to the next stop heading or
// horizontal rule, or end of input. The second return is false when no
// synonym matched; absent sections are a data-quality miss, not an error.
func locateSection(text string, synonyms, stops []*regexp.Regexp, labels []string) (string, string, bool) {
	for i, re := range synonyms {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		rest := text[loc[1]:]
		end := len(rest)
		for _, stop := range stops {
			if l := stop.FindStringIndex(rest); l != nil && l[0] < end {
				end = l[0]
			}
		}
		if l := hrRe.FindStringIndex(rest); l != nil && l[0] < end {
			end = l[0]
		}
		return strings.TrimSpace(rest[:end]), labels[i], true
	}
	return "", "", false
}
