package evalparse

// Level classifies a learning priority by urgency.
type Level string

const (
	LevelUrgent    Level = "urgent"
	LevelImportant Level = "important"
	LevelOptional  Level = "optional"
)

// Score is a points total with its derived percentage.
// Percentage is 0 when Max is 0, never NaN or Inf.
type Score struct {
	Value      float64 `json:"value"`
	Max        float64 `json:"max"`
	Percentage int     `json:"percentage"`
}

// Category is one scored sub-dimension of the evaluation
// (e.g. communication, medical correctness).
type Category struct {
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	Max        float64 `json:"max"`
	Percentage int     `json:"percentage"`
}

// Priority is a triage-labeled action item.
type Priority struct {
	Level  Level  `json:"level"`
	Action string `json:"action"`
}

// Evaluation is the structured record extracted from one evaluation text.
//
// Every field is always present: extraction misses yield the documented
// default (empty string, empty slice, or the {0,100,0} ungraded score
// sentinel), never nil. ID and Timestamp are opaque caller-supplied
// passthrough values.
type Evaluation struct {
	ID         string     `json:"id"`
	Timestamp  string     `json:"timestamp"`
	Summary    string     `json:"summary"`
	Score      Score      `json:"score"`
	Categories []Category `json:"categories"`
	Strengths  []string   `json:"strengths"`
	Gaps       []string   `json:"gaps"`
	Priorities []Priority `json:"priorities"`
	NextSteps  []string   `json:"next_steps"`
	Resources  []string   `json:"resources"`
}

// Ungraded reports whether the record carries no grading signal at all:
// no categories and the default score sentinel. Callers use this as the
// heuristic "parsed with zero confidence" check.
func (e *Evaluation) Ungraded() bool {
	return len(e.Categories) == 0 && e.Score.Value == 0 && e.Score.Max == 100
}

// Report describes what a parse run actually found. It is produced by
// ParseWithReport for debugging format drift; Parse itself stays silent.
type Report struct {
	// MatchedSynonyms maps each located section to the heading synonym
	// that matched it.
	MatchedSynonyms map[string]string `json:"matched_synonyms"`
	// MissingSections lists sections whose synonyms matched nothing.
	MissingSections []string `json:"missing_sections"`
	// ScoreSource is "explicit", "categories" or "default".
	ScoreSource string `json:"score_source"`
	// CategoryCount is the number of category lines extracted.
	CategoryCount int `json:"category_count"`
	// MojibakeRepaired is true when double-encoded UTF-8 was detected
	// and re-decoded before extraction.
	MojibakeRepaired bool `json:"mojibake_repaired"`
}
