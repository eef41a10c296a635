package evalparse

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables holds the heading synonym sets that drive section location.
//
// The upstream generator is not under our control and has already shipped
// at least two heading vocabularies; adding a synonym entry here is the
// supported way to absorb the next one. Matching is case-insensitive, so
// entries are listed in canonical uppercase. Longer variants must come
// before their prefixes (GESAMTPUNKTZAHL before GESAMT).
type Tables struct {
	Summary    []string `yaml:"summary"`
	Score      []string `yaml:"score"`
	Categories []string `yaml:"categories"`
	Strengths  []string `yaml:"strengths"`
	Gaps       []string `yaml:"gaps"`
	Priorities []string `yaml:"priorities"`
	NextSteps  []string `yaml:"next_steps"`
	Resources  []string `yaml:"resources"`

	// Bilingual labels following the colored priority markers.
	UrgentLabels    []string `yaml:"urgent_labels"`
	ImportantLabels []string `yaml:"important_labels"`
	OptionalLabels  []string `yaml:"optional_labels"`
}

// DefaultTables covers both observed generator formats: the
// ZUSAMMENFASSUNG / RICHTIG GEMACHT vocabulary and the later
// GESAMTEINDRUCK / GUT GEMACHT one.
func DefaultTables() Tables {
	return Tables{
		Summary: []string{
			"ZUSAMMENFASSUNG",
			"GESAMTEINDRUCK",
			"ÜBERBLICK",
			"FAZIT",
		},
		Score: []string{
			"GESAMTPUNKTZAHL",
			"GESAMTBEWERTUNG",
			"PUNKTZAHL",
			"ERGEBNIS",
			"SCORE",
			"GESAMT",
		},
		Categories: []string{
			"BEWERTUNG NACH KATEGORIEN",
			"EINZELBEWERTUNG",
			"KATEGORIEN",
		},
		Strengths: []string{
			"RICHTIG GEMACHT",
			"GUT GEMACHT",
			"STÄRKEN",
			"POSITIV",
		},
		Gaps: []string{
			"FEHLENDE ÜBERLEGUNGEN",
			"FEHLENDE PUNKTE",
			"VERBESSERUNGSBEDARF",
			"NICHT BEDACHT",
			"LÜCKEN",
			"VERPASST",
		},
		Priorities: []string{
			"LERNPRIORITÄTEN",
			"LERNEMPFEHLUNGEN",
			"PRIORITÄTEN",
		},
		NextSteps: []string{
			"EMPFOHLENE NÄCHSTE SCHRITTE",
			"NÄCHSTE SCHRITTE",
			"WEITERES VORGEHEN",
		},
		Resources: []string{
			"EMPFOHLENE RESSOURCEN",
			"RESSOURCEN",
			"LITERATUR",
			"QUELLEN",
		},
		UrgentLabels:    []string{"DRINGEND", "URGENT", "SOFORT"},
		ImportantLabels: []string{"WICHTIG", "IMPORTANT"},
		OptionalLabels:  []string{"OPTIONAL", "BEI INTERESSE"},
	}
}

// LoadTables reads synonym tables from a YAML file. Fields absent from the
// file keep their defaults, so an override file only needs the sections
// whose vocabulary drifted.
func LoadTables(path string) (Tables, error) {
	tables := DefaultTables()
	data, err := os.ReadFile(path)
	if err != nil {
		return tables, fmt.Errorf("read synonyms %s: %w", path, err)
	}
	var file Tables
	if err := yaml.Unmarshal(data, &file); err != nil {
		return tables, fmt.Errorf("parse synonyms %s: %w", path, err)
	}
	tables.merge(file)
	return tables, nil
}

func (t *Tables) merge(o Tables) {
	if len(o.Summary) > 0 {
		t.Summary = o.Summary
	}
	if len(o.Score) > 0 {
		t.Score = o.Score
	}
	if len(o.Categories) > 0 {
		t.Categories = o.Categories
	}
	if len(o.Strengths) > 0 {
		t.Strengths = o.Strengths
	}
	if len(o.Gaps) > 0 {
		t.Gaps = o.Gaps
	}
	if len(o.Priorities) > 0 {
		t.Priorities = o.Priorities
	}
	if len(o.NextSteps) > 0 {
		t.NextSteps = o.NextSteps
	}
	if len(o.Resources) > 0 {
		t.Resources = o.Resources
	}
	if len(o.UrgentLabels) > 0 {
		t.UrgentLabels = o.UrgentLabels
	}
	if len(o.ImportantLabels) > 0 {
		t.ImportantLabels = o.ImportantLabels
	}
	if len(o.OptionalLabels) > 0 {
		t.OptionalLabels = o.OptionalLabels
	}
}

// sectionSynonyms returns the per-section tables keyed by logical section
// name, in a stable order used for stop-heading construction and reports.
func (t *Tables) sectionSynonyms() []sectionTable {
	return []sectionTable{
		{SectionSummary, t.Summary},
		{SectionScore, t.Score},
		{SectionCategories, t.Categories},
		{SectionStrengths, t.Strengths},
		{SectionGaps, t.Gaps},
		{SectionPriorities, t.Priorities},
		{SectionNextSteps, t.NextSteps},
		{SectionResources, t.Resources},
	}
}

type sectionTable struct {
	name     string
	synonyms []string
}

// Logical section names used in Report.MatchedSynonyms.
const (
	SectionSummary    = "summary"
	SectionScore      = "score"
	SectionCategories = "categories"
	SectionStrengths  = "strengths"
	SectionGaps       = "gaps"
	SectionPriorities = "priorities"
	SectionNextSteps  = "next_steps"
	SectionResources  = "resources"
)
