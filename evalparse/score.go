package evalparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numPair matches "<number> / <number>" with optional emphasis markup in
// front, tolerating decimal commas ("7,5/10").
const numPair = `[ \t]*[*_]*[ \t]*(\d+(?:[.,]\d+)?)[ \t]*/[ \t]*(\d+(?:[.,]\d+)?)`

// scoreRegex compiles the explicit-score pattern for one heading synonym:
// the heading immediately followed by a value/max pair on the same line.
func scoreRegex(synonym string) *regexp.Regexp {
	body := regexp.QuoteMeta(synonym)
	if isASCIIWord(lastRune(synonym)) {
		body += `\b`
	}
	return regexp.MustCompile(headingPrefix + body + headingSuffix + numPair)
}

// extractScore finds an explicit score pair, or derives totals from the
// category lines, or returns the {0,100,0} ungraded sentinel. The explicit
// score is authoritative when both are present.
func (p *Parser) extractScore(text string, cats []Category) (Score, string) {
	for _, re := range p.scoreRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return newScore(parseNum(m[1]), parseNum(m[2])), "explicit"
		}
	}

	if len(cats) > 0 {
		var value, max float64
		for _, c := range cats {
			value += c.Score
			max += c.Max
		}
		return newScore(value, max), "categories"
	}

	return Score{Value: 0, Max: 100, Percentage: 0}, "default"
}

// newScore derives the percentage, guarding against division by zero:
// a malformed max of 0 yields percentage 0, never NaN or Inf.
func newScore(value, max float64) Score {
	return Score{Value: value, Max: max, Percentage: percentage(value, max)}
}

func percentage(value, max float64) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(value / max * 100))
}

func parseNum(s string) float64 {
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
