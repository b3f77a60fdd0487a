// Package names matches free-text credits against known people and
// ensembles: key folding, name reversal, similarity, credit list expansion
// and entity extraction from ordered credit lists.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var commonSuffixes = map[string]bool{
	"jr": true, "sr": true, "jr.": true, "sr.": true,
	"i": true, "ii": true, "iii": true, "iv": true, "v": true, "vi": true,
	"vii": true, "viii": true, "ix": true, "x": true, "xi": true,
}

var (
	keyStripper   = strings.NewReplacer("-", "", " ", "", "/", "", ".", "", "'", "", ",", "")
	parenthetical = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	nonWord       = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

func removeDiacritics(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if normalized, _, err := transform.String(t, s); err == nil {
		return normalized
	}
	return s
}

// MakeKey returns the lookup key for a name: diacritics removed, hyphens,
// spaces, slashes, periods, apostrophes and commas dropped, lower case.
// "Dvořák" and "dvorak" share a key.
func MakeKey(name string) string {
	return strings.ToLower(keyStripper.Replace(removeDiacritics(strings.TrimSpace(name))))
}

// Fold normalizes a name for fragment matching. Parenthesised and bracketed
// decorations are dropped, punctuation becomes whitespace, and a leading
// "the" is removed, so "The Berlin Philharmonic (1882)" folds to
// "berlin philharmonic".
func Fold(s string) string {
	s = parenthetical.ReplaceAllString(s, " ")
	s = removeDiacritics(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "'", "")
	s = nonWord.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "the ")
	return s
}

// ReverseName turns "First Middle Last" into "Last, First Middle".
// A trailing suffix such as "Jr" or "III" stays at the end:
// "Martin Luther King Jr" becomes "King, Martin Luther Jr".
func ReverseName(name string) string {
	parts := strings.Fields(name)
	switch {
	case len(parts) < 2:
		return strings.TrimSpace(name)
	case commonSuffixes[strings.ToLower(parts[len(parts)-1])]:
		if len(parts) < 3 {
			return strings.Join(parts, " ")
		}
		last := parts[len(parts)-2]
		given := strings.Join(parts[:len(parts)-2], " ")
		return last + ", " + given + " " + parts[len(parts)-1]
	default:
		last := parts[len(parts)-1]
		return last + ", " + strings.Join(parts[:len(parts)-1], " ")
	}
}

// LastName returns the family name of a "First Last" name.
func LastName(name string) string {
	parts := strings.Fields(ReverseName(name))
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSuffix(parts[0], ",")
}

// InitialsKey returns the initials-plus-last-name key of a name:
// "Johann Sebastian Bach" gives "jsbach". Single-word names have no
// initials form and return "".
func InitialsKey(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return ""
	}
	var b strings.Builder
	lastIdx := len(parts) - 1
	suffix := ""
	if commonSuffixes[strings.ToLower(parts[lastIdx])] {
		if len(parts) < 3 {
			return ""
		}
		suffix = parts[lastIdx]
		lastIdx--
	}
	for _, p := range parts[:lastIdx] {
		r := []rune(p)
		b.WriteRune(r[0])
	}
	b.WriteString(parts[lastIdx])
	b.WriteString(suffix)
	return MakeKey(b.String())
}
