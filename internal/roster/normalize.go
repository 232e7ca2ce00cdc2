package roster

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes to NFD, drops combining marks, and recomposes,
// so "José" becomes "Jose".
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// disallowed matches every character that is not a lowercase letter, digit,
// whitespace, or comma. Applied after lowercasing.
var disallowed = regexp.MustCompile(`[^a-z0-9\s,]`)

// Normalize canonicalizes a person name for matching: diacritics stripped,
// lowercased, all characters except letters, digits, whitespace and comma
// removed, "Last, First" collapsed to "First Last", repeated whitespace
// collapsed. Normalize is idempotent.
func Normalize(name string) string {
	if name == "" {
		return ""
	}

	if stripped, _, err := transform.String(stripDiacritics, name); err == nil {
		name = stripped
	}
	name = strings.ToLower(name)
	name = disallowed.ReplaceAllString(name, "")

	// "Last, First" -> "First Last"
	if strings.Contains(name, ",") {
		parts := strings.SplitN(name, ",", 3)
		if len(parts) >= 2 {
			name = strings.TrimSpace(parts[1]) + " " + strings.TrimSpace(parts[0])
		}
	}

	return strings.Join(strings.Fields(name), " ")
}
