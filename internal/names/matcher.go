package names

import (
	"regexp"
	"slices"
	"strings"
)

// DefaultOrchestraTokens are the words that mark an ensemble credit. A
// token matches whole words only.
var DefaultOrchestraTokens = []string{
	"orchestra", "orchestras", "orchestre", "orchester", "orquesta", "orkest", "orkestra", "orkester",
	"philharmonic", "philharmonia", "philharmoniker", "philharmonie", "filharmonica", "filharmonie",
	"symphony", "symphonie", "symphoniker", "sinfonia", "sinfonietta", "sinfonieorchester",
	"kammerorchester", "ensemble", "consort", "camerata", "chamber",
}

// MisspellingResolver maps a possibly misspelled name to its canonical
// spelling, returning the input when the name is unknown.
type MisspellingResolver interface {
	ResolveMisspelling(name string) string
}

// Matcher decides whether credits name known or structurally recognizable
// entities.
type Matcher struct {
	resolver  MisspellingResolver
	orchestra *regexp.Regexp
}

// NewMatcher returns a Matcher. A nil resolver leaves names unchanged apart
// from whitespace cleanup; empty orchestraTokens selects
// DefaultOrchestraTokens.
func NewMatcher(resolver MisspellingResolver, orchestraTokens []string) *Matcher {
	if len(orchestraTokens) == 0 {
		orchestraTokens = DefaultOrchestraTokens
	}
	quoted := make([]string, 0, len(orchestraTokens))
	for _, t := range orchestraTokens {
		if t = strings.TrimSpace(t); t != "" {
			quoted = append(quoted, regexp.QuoteMeta(t))
		}
	}
	return &Matcher{
		resolver:  resolver,
		orchestra: regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`),
	}
}

// LooksLikeOrchestraName reports whether s contains an ensemble word such
// as "Orchestra", "Philharmonic" or "Ensemble".
func (m *Matcher) LooksLikeOrchestraName(s string) bool {
	return m.orchestra.MatchString(s)
}

// CorrectMisspelling trims and collapses whitespace in name, then returns
// its canonical spelling.
func (m *Matcher) CorrectMisspelling(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if m.resolver == nil || name == "" {
		return name
	}
	return m.resolver.ResolveMisspelling(name)
}

// ContainsName reports whether the known name occurs in query. It matches
// when the folded name is a whitespace-bounded part of the folded query,
// when a query of at least two words is a whole-word part of the name, or
// when both hold the same words in a different order ("Karajan, Herbert von").
func ContainsName(query, name string) bool {
	fq, fn := Fold(query), Fold(name)
	if fq == "" || fn == "" {
		return false
	}
	if strings.Contains(" "+fq+" ", " "+fn+" ") {
		return true
	}
	if strings.Contains(fq, " ") && strings.Contains(" "+fn+" ", " "+fq+" ") {
		return true
	}
	return sameWords(fq, fn)
}

func sameWords(a, b string) bool {
	wa, wb := strings.Fields(a), strings.Fields(b)
	if len(wa) != len(wb) {
		return false
	}
	slices.Sort(wa)
	slices.Sort(wb)
	return slices.Equal(wa, wb)
}

// Extraction is the outcome of ExtractEntity.
type Extraction[T any] struct {
	Entry T
	// Name is the credit that matched, Index its position in the input.
	Name  string
	Index int
	// Rest is the input without the matched credit, order preserved.
	Rest []string
}

// ExtractEntity scans names in order and returns the first one for which
// find succeeds, along with the remaining names. When nothing matches it
// returns false and Rest holds a copy of names.
func ExtractEntity[T any](names []string, find func(string) (T, bool)) (Extraction[T], bool) {
	for i, n := range names {
		entry, ok := find(n)
		if !ok {
			continue
		}
		rest := make([]string, 0, len(names)-1)
		rest = append(rest, names[:i]...)
		rest = append(rest, names[i+1:]...)
		return Extraction[T]{Entry: entry, Name: n, Index: i, Rest: rest}, true
	}
	return Extraction[T]{Index: -1, Rest: slices.Clone(names)}, false
}
