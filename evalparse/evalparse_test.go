package evalparse

import (
	"encoding/json"
	"reflect"
	"testing"
)

// formatA is the older generator vocabulary: uppercase bold headings,
// numbered category list, explicit total.
const formatA = `**ZUSAMMENFASSUNG:**
Der Fall wurde strukturiert bearbeitet, die Anamnese war weitgehend vollständig.

**GESAMTPUNKTZAHL:** 72/100

**BEWERTUNG NACH KATEGORIEN:**
1. Anamnese: 15/20
2. Körperliche Untersuchung: 12/20
3. Diagnostik: 18/25
**4.** Therapie: 27/35

✅ RICHTIG GEMACHT:
- Strukturierte Anamnese nach Schema
- Vitalparameter vollständig erhoben
• Differentialdiagnosen benannt

❌ FEHLENDE ÜBERLEGUNGEN:
- Keine Medikamentenanamnese
- D-Dimere nicht erwähnt

📚 LERNPRIORITÄTEN:
🔴 DRINGEND: EKG-Befundung systematisch üben
🟡 WICHTIG: Leitlinie Lungenembolie wiederholen
🟢 OPTIONAL: Wells-Score auswendig lernen

**NÄCHSTE SCHRITTE:**
1. Wiederhole das Kapitel Thoraxschmerz
2. Übe zwei weitere Fälle diese Woche

📖 EMPFOHLENE RESSOURCEN:
- Kapitel Lungenarterienembolie
- ESC-Leitlinie 2019
`

// formatB is the later vocabulary: plain headings, icon-prefixed category
// lines with embedded percentages, no explicit total.
const formatB = `GESAMTEINDRUCK:
Solide Bearbeitung mit guter Kommunikation gegenüber der Patientin.

EINZELBEWERTUNG:
🩺 Anamnese: 8/10 (80%)
💬 Kommunikation: 9/10 (90%)
🧠 Klinisches Denken: 6/10 (60%)

✓ GUT GEMACHT:
• Offene Fragen zu Beginn
• Zusammenfassung am Ende des Gesprächs

⚠️ VERBESSERUNGSBEDARF:
• Schmerzanamnese zu oberflächlich

NÄCHSTE SCHRITTE:
1. OPQRST-Schema wiederholen
`

func TestParse_FormatA(t *testing.T) {
	p := New(Config{})
	ev := p.Parse(formatA, "eval-1", "2026-08-01T10:00:00Z")

	if ev.ID != "eval-1" || ev.Timestamp != "2026-08-01T10:00:00Z" {
		t.Errorf("passthrough fields: got %q/%q", ev.ID, ev.Timestamp)
	}
	if ev.Summary == "" {
		t.Error("expected non-empty summary")
	}
	if ev.Score.Value != 72 || ev.Score.Max != 100 || ev.Score.Percentage != 72 {
		t.Errorf("score: got %+v, want {72 100 72}", ev.Score)
	}
	if len(ev.Categories) != 4 {
		t.Fatalf("categories: got %d, want 4", len(ev.Categories))
	}
	if ev.Categories[0].Name != "Anamnese" || ev.Categories[0].Score != 15 {
		t.Errorf("first category: got %+v", ev.Categories[0])
	}
	if ev.Categories[3].Name != "Therapie" {
		t.Errorf("emphasised ordinal category: got %+v", ev.Categories[3])
	}
	if len(ev.Strengths) != 3 {
		t.Errorf("strengths: got %d items %v, want 3", len(ev.Strengths), ev.Strengths)
	}
	if len(ev.Gaps) != 2 {
		t.Errorf("gaps: got %v, want 2 items", ev.Gaps)
	}
	wantPrios := []Priority{
		{LevelUrgent, "EKG-Befundung systematisch üben"},
		{LevelImportant, "Leitlinie Lungenembolie wiederholen"},
		{LevelOptional, "Wells-Score auswendig lernen"},
	}
	if !reflect.DeepEqual(ev.Priorities, wantPrios) {
		t.Errorf("priorities: got %v, want %v", ev.Priorities, wantPrios)
	}
	if len(ev.NextSteps) != 2 {
		t.Errorf("next steps: got %v, want 2 items", ev.NextSteps)
	}
	if len(ev.Resources) != 2 {
		t.Errorf("resources: got %v, want 2 items", ev.Resources)
	}
}

func TestParse_FormatB(t *testing.T) {
	p := New(Config{})
	ev := p.Parse(formatB, "eval-2", "")

	if ev.Summary == "" {
		t.Error("expected non-empty summary")
	}
	if len(ev.Categories) != 3 {
		t.Fatalf("categories: got %d, want 3", len(ev.Categories))
	}
	if ev.Categories[1].Name != "Kommunikation" || ev.Categories[1].Percentage != 90 {
		t.Errorf("icon category: got %+v", ev.Categories[1])
	}
	// No explicit score heading: totals derive from categories.
	if ev.Score.Value != 23 || ev.Score.Max != 30 || ev.Score.Percentage != 77 {
		t.Errorf("derived score: got %+v, want {23 30 77}", ev.Score)
	}
	if len(ev.Strengths) != 2 {
		t.Errorf("strengths: got %v, want 2 items", ev.Strengths)
	}
	if len(ev.Gaps) != 1 {
		t.Errorf("gaps: got %v, want 1 item", ev.Gaps)
	}
	if len(ev.NextSteps) != 1 {
		t.Errorf("next steps: got %v, want 1 item", ev.NextSteps)
	}
}

func TestParse_Idempotent(t *testing.T) {
	p := New(Config{})
	first := p.Parse(formatA, "id", "ts")
	second := p.Parse(formatA, "id", "ts")
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input must yield identical records")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	p := New(Config{})
	ev := p.Parse("", "id", "ts")

	if ev.Score.Value != 0 || ev.Score.Max != 100 || ev.Score.Percentage != 0 {
		t.Errorf("score sentinel: got %+v, want {0 100 0}", ev.Score)
	}
	if ev.Summary != "" {
		t.Errorf("summary: got %q, want empty", ev.Summary)
	}
	for name, list := range map[string]int{
		"categories": len(ev.Categories),
		"strengths":  len(ev.Strengths),
		"gaps":       len(ev.Gaps),
		"priorities": len(ev.Priorities),
		"next_steps": len(ev.NextSteps),
		"resources":  len(ev.Resources),
	} {
		if list != 0 {
			t.Errorf("%s: got %d items, want 0", name, list)
		}
	}
	if !ev.Ungraded() {
		t.Error("empty input must report as ungraded")
	}
}

func TestParse_GarbageInput(t *testing.T) {
	p := New(Config{})
	inputs := []string{
		"lorem ipsum dolor sit amet",
		"::::////****",
		"\x00\x01\x02",
		"\xff\xfe invalid utf8 \x80",
		"🔴🟡🟢✅❌",
	}
	for _, in := range inputs {
		ev := p.Parse(in, "id", "ts")
		if ev.Score.Max != 100 {
			t.Errorf("Parse(%q): score %+v, want sentinel", in, ev.Score)
		}
		if ev.Strengths == nil || ev.Categories == nil {
			t.Errorf("Parse(%q): lists must be non-nil", in)
		}
	}
}

func TestParse_ListsNeverNilInJSON(t *testing.T) {
	// WHAT: The serialized record always contains arrays, never null.
	// WHY: Downstream renderers index into these fields unconditionally.
	p := New(Config{})
	data, err := json.Marshal(p.Parse("nothing recognizable", "id", "ts"))
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"categories", "strengths", "gaps", "priorities", "next_steps", "resources"} {
		if _, ok := m[key].([]any); !ok {
			t.Errorf("%s: got %T, want JSON array", key, m[key])
		}
	}
}

func TestParse_MojibakeInput(t *testing.T) {
	// STÄRKEN and NÄCHSTE double-encoded: UTF-8 bytes read as cp1252.
	mojibake := "STÃ„RKEN:\n- Gute GesprÃ¤chsfÃ¼hrung\n\nNÃ„CHSTE SCHRITTE:\n1. Kapitel wiederholen\n"
	p := New(Config{})
	ev, report := p.ParseWithReport(mojibake, "id", "ts")

	if !report.MojibakeRepaired {
		t.Fatal("expected mojibake repair")
	}
	if len(ev.Strengths) != 1 || ev.Strengths[0] != "Gute Gesprächsführung" {
		t.Errorf("strengths after repair: got %v", ev.Strengths)
	}
	if len(ev.NextSteps) != 1 {
		t.Errorf("next steps after repair: got %v", ev.NextSteps)
	}
}

func TestParseWithReport(t *testing.T) {
	p := New(Config{})
	ev, report := p.ParseWithReport(formatA, "id", "ts")

	if report.ScoreSource != "explicit" {
		t.Errorf("score source: got %q, want explicit", report.ScoreSource)
	}
	if report.CategoryCount != 4 {
		t.Errorf("category count: got %d, want 4", report.CategoryCount)
	}
	if report.MatchedSynonyms[SectionSummary] != "ZUSAMMENFASSUNG" {
		t.Errorf("summary synonym: got %q", report.MatchedSynonyms[SectionSummary])
	}
	if report.MatchedSynonyms[SectionStrengths] != "RICHTIG GEMACHT" {
		t.Errorf("strengths synonym: got %q", report.MatchedSynonyms[SectionStrengths])
	}
	for _, missing := range report.MissingSections {
		if missing == SectionSummary || missing == SectionScore {
			t.Errorf("%s reported missing but was present", missing)
		}
	}
	// The report variant must not change the parse result.
	if !reflect.DeepEqual(ev, p.Parse(formatA, "id", "ts")) {
		t.Error("ParseWithReport and Parse disagree")
	}
}

func TestParse_CustomTables(t *testing.T) {
	tables := DefaultTables()
	tables.Strengths = []string{"WAS LIEF GUT"}
	p := New(Config{Tables: &tables})

	ev := p.Parse("WAS LIEF GUT:\n- Saubere Anamnese\n", "id", "ts")
	if len(ev.Strengths) != 1 || ev.Strengths[0] != "Saubere Anamnese" {
		t.Errorf("custom synonym strengths: got %v", ev.Strengths)
	}
}
