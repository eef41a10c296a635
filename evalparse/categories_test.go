package evalparse

import (
	"reflect"
	"testing"
)

func TestExtractCategories_Numbered(t *testing.T) {
	text := `1. Anamnese: 15/20
2. Körperliche Untersuchung: 12/20
**3.** Diagnostik: 7,5/10
`
	want := []Category{
		{"Anamnese", 15, 20, 75},
		{"Körperliche Untersuchung", 12, 20, 60},
		{"Diagnostik", 7.5, 10, 75},
	}
	if got := extractCategories(text); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestExtractCategories_IconPrefixed(t *testing.T) {
	text := `🩺 Anamnese: 8/10 (80%)
💬 Kommunikation: 9/10
`
	got := extractCategories(text)
	if len(got) != 2 {
		t.Fatalf("got %d categories, want 2", len(got))
	}
	if got[0].Name != "Anamnese" || got[0].Percentage != 80 {
		t.Errorf("first: got %+v", got[0])
	}
	if got[1].Name != "Kommunikation" || got[1].Max != 10 {
		t.Errorf("second: got %+v", got[1])
	}
}

func TestExtractCategories_RecomputedPercentage(t *testing.T) {
	// An embedded percentage that disagrees with score/max is discarded;
	// the recomputed value is authoritative.
	got := extractCategories("🧠 Klinisches Denken: 6/10 (99%)\n")
	if len(got) != 1 {
		t.Fatalf("got %d categories, want 1", len(got))
	}
	if got[0].Percentage != 60 {
		t.Errorf("percentage: got %d, want recomputed 60", got[0].Percentage)
	}
}

func TestExtractCategories_NameTrimming(t *testing.T) {
	got := extractCategories("1. **Therapie** : 27/35\n")
	if len(got) != 1 || got[0].Name != "Therapie" {
		t.Errorf("got %+v, want name Therapie", got)
	}
}

func TestExtractCategories_NoMatches(t *testing.T) {
	got := extractCategories("nur Fließtext, keine Wertung")
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}

func TestExtractCategories_IgnoresNonCategoryLines(t *testing.T) {
	// Priority and list lines carry no value/max pair and must not be
	// mistaken for categories.
	text := `🔴 DRINGEND: EKG üben
✅ RICHTIG GEMACHT:
- Anamnese: gut strukturiert
1. Wiederhole das Kapitel
`
	if got := extractCategories(text); len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}
}
