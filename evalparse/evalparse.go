// Package evalparse extracts a structured record from free-form,
// LLM-generated exam evaluation texts (German-language medical exam
// feedback, in several inconsistent formats).
//
// The generator's vocabulary drifts, so every section is located through a
// declarative synonym table rather than one-off patterns. All extractors
// run independently over the same raw text; a section that fails to match
// degrades to its documented default and is never an error.
//
// Usage:
//
//	parser := evalparse.New(evalparse.Config{})
//	record := parser.Parse(rawText, id, timestamp)
//
// Parsing is pure and synchronous: no I/O, no shared state, identical
// input always yields an identical record. A Parser is safe for
// concurrent use.
package evalparse

import (
	"regexp"
	"strings"
)

// Config configures a Parser.
type Config struct {
	// Tables overrides the heading synonym tables. Nil uses DefaultTables.
	Tables *Tables
}

// Parser turns raw evaluation text into an Evaluation record.
// All patterns are compiled once in New; Parse allocates only per-call
// state.
type Parser struct {
	tables   Tables
	sections []compiledSection
	stops    []*regexp.Regexp
	scoreRes []*regexp.Regexp
	prioRes  []prioScan
}

type compiledSection struct {
	name     string
	synonyms []string
	res      []*regexp.Regexp
}

// New creates a Parser with the given configuration.
func New(cfg Config) *Parser {
	tables := DefaultTables()
	if cfg.Tables != nil {
		tables = *cfg.Tables
	}

	p := &Parser{tables: tables}
	for _, st := range tables.sectionSynonyms() {
		cs := compiledSection{name: st.name, synonyms: st.synonyms}
		for _, syn := range st.synonyms {
			re := headingRegex(syn)
			cs.res = append(cs.res, re)
			p.stops = append(p.stops, re)
		}
		p.sections = append(p.sections, cs)
	}
	for _, syn := range tables.Score {
		p.scoreRes = append(p.scoreRes, scoreRegex(syn))
	}
	p.prioRes = []prioScan{
		{LevelUrgent, priorityRegex(markerUrgent, tables.UrgentLabels)},
		{LevelImportant, priorityRegex(markerImportant, tables.ImportantLabels)},
		{LevelOptional, priorityRegex(markerOptional, tables.OptionalLabels)},
	}
	return p
}

// Parse extracts a structured record from raw evaluation text. It never
// fails: malformed or unrecognized input yields the all-defaults record.
// id and timestamp are opaque and copied into the result untouched.
func (p *Parser) Parse(raw, id, timestamp string) Evaluation {
	ev, _ := p.parse(raw, id, timestamp)
	return ev
}

// ParseWithReport is Parse plus a diagnostic Report describing which
// sections were located and where the score came from. Intended for
// debugging format drift; the parse result is identical to Parse.
func (p *Parser) ParseWithReport(raw, id, timestamp string) (Evaluation, Report) {
	return p.parse(raw, id, timestamp)
}

func (p *Parser) parse(raw, id, timestamp string) (Evaluation, Report) {
	text, repaired := normalizeInput(raw)

	report := Report{
		MatchedSynonyms:  map[string]string{},
		MissingSections:  []string{},
		MojibakeRepaired: repaired,
	}

	spans := map[string]string{}
	located := map[string]bool{}
	for _, cs := range p.sections {
		span, synonym, ok := locateSection(text, cs.res, p.stops, cs.synonyms)
		if !ok {
			report.MissingSections = append(report.MissingSections, cs.name)
			continue
		}
		spans[cs.name] = span
		located[cs.name] = true
		report.MatchedSynonyms[cs.name] = synonym
	}

	categories := extractCategories(text)
	report.CategoryCount = len(categories)

	score, source := p.extractScore(text, categories)
	report.ScoreSource = source

	ev := Evaluation{
		ID:         id,
		Timestamp:  timestamp,
		Summary:    firstParagraph(spans[SectionSummary]),
		Score:      score,
		Categories: categories,
		Strengths:  extractListItems(spans[SectionStrengths], located[SectionStrengths]),
		Gaps:       extractListItems(spans[SectionGaps], located[SectionGaps]),
		Priorities: p.extractPriorities(text),
		NextSteps:  extractListItems(spans[SectionNextSteps], located[SectionNextSteps]),
		Resources:  extractListItems(spans[SectionResources], located[SectionResources]),
	}
	return ev, report
}

// firstParagraph trims a summary span down to its prose: leading emphasis
// markup is dropped and internal whitespace collapsed. The full span is
// kept (summaries are short); only blank-line padding disappears.
func firstParagraph(span string) string {
	span = strings.TrimSpace(strings.TrimLeft(span, "*_ \t\r\n"))
	if span == "" {
		return ""
	}
	lines := strings.Split(span, "\n")
	kept := lines[:0]
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}
