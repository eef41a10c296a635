package evalparse

import (
	"reflect"
	"testing"
)

func TestExtractPriorities_GroupedByLevel(t *testing.T) {
	// Urgent and optional lines interleaved in the text; the result is
	// grouped by level regardless of position.
	text := `🟢 OPTIONAL: Wells-Score lernen
🔴 DRINGEND: EKG üben
🟡 WICHTIG: Leitlinie lesen
🔴 DRINGEND: BGA interpretieren
`
	p := New(Config{})
	want := []Priority{
		{LevelUrgent, "EKG üben"},
		{LevelUrgent, "BGA interpretieren"},
		{LevelImportant, "Leitlinie lesen"},
		{LevelOptional, "Wells-Score lernen"},
	}
	if got := p.extractPriorities(text); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractPriorities_BilingualLabels(t *testing.T) {
	text := "🔴 URGENT: review ECG basics\n🟡 IMPORTANT: read the guideline\n"
	p := New(Config{})
	got := p.extractPriorities(text)
	if len(got) != 2 {
		t.Fatalf("got %d priorities, want 2", len(got))
	}
	if got[0].Level != LevelUrgent || got[1].Level != LevelImportant {
		t.Errorf("levels: got %v", got)
	}
}

func TestExtractPriorities_MarkupVariants(t *testing.T) {
	text := "- 🔴 **DRINGEND:** EKG üben\n* 🟢 __OPTIONAL__: Kür\n"
	p := New(Config{})
	want := []Priority{
		{LevelUrgent, "EKG üben"},
		{LevelOptional, "Kür"},
	}
	if got := p.extractPriorities(text); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractPriorities_None(t *testing.T) {
	p := New(Config{})
	got := p.extractPriorities("keine Marker hier")
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}

func TestExtractPriorities_VariationSelector(t *testing.T) {
	// Some generators emit the marker with a trailing U+FE0F.
	text := "🔴️ DRINGEND: sofort üben\n"
	p := New(Config{})
	got := p.extractPriorities(text)
	if len(got) != 1 || got[0].Action != "sofort üben" {
		t.Errorf("got %v, want one urgent item", got)
	}
}
