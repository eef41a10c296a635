package evalparse

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// mojibakeMarkers are sequences that appear when UTF-8 German text is
// decoded as Windows-1252: umlauts become "Ã¤"-style pairs and punctuation
// grows an "â€" prefix.
var mojibakeMarkers = []string{
	"Ã¤", "Ã¶", "Ã¼", "ÃŸ", "Ã„", "Ã–", "Ãœ", "â€",
}

// normalizeInput prepares raw text for extraction: best-effort repair of
// double-encoded UTF-8, then NFKC normalization so fullwidth or composed
// variants of markers and digits still match. It never fails; text that
// cannot be repaired passes through and simply may not match.
func normalizeInput(text string) (string, bool) {
	repaired := false
	if looksMojibake(text) {
		if fixed, ok := repairDoubleEncoded(text); ok {
			text = fixed
			repaired = true
		}
	}
	return norm.NFKC.String(text), repaired
}

func looksMojibake(text string) bool {
	for _, m := range mojibakeMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// repairDoubleEncoded undoes one round of UTF-8-read-as-cp1252: each rune
// maps back to the byte it was decoded from, and the byte string is
// reinterpreted as UTF-8. Windows-1252 rather than Latin-1 because that is
// what lossy pipelines actually decode with (0x84 shows up as "„", 0x80 as
// "€"). The repair is only accepted when every rune maps to a byte and the
// result is valid UTF-8; otherwise the input was not actually
// double-encoded and is left alone.
func repairDoubleEncoded(text string) (string, bool) {
	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return "", false
	}
	if !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}
