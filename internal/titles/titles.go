// Package titles rewrites track and album titles into a consistent
// classical style: "#" numbering, "Op." designators, catalogue prefixes and
// punctuation cleanup.
package titles

import (
	"regexp"
	"slices"
	"strings"
)

// Default token lists. Matching is case-insensitive and allows a trailing
// period, so "No" also covers "no." and "NO".
var (
	DefaultNumberTokens = []string{"Number", "Num", "Nbr", "Nr", "No"}
	DefaultOpusTokens   = []string{"Opus", "Op"}
)

// maxPasses bounds the fixpoint loops. Rules usually converge in one or
// two passes; nested empty brackets take one pass per level.
const maxPasses = 16

// Rules configures the token lists of a Normalizer.
type Rules struct {
	NumberTokens []string
	OpusTokens   []string
}

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

func (r rewrite) apply(s string) string {
	return r.re.ReplaceAllString(s, r.repl)
}

// Normalizer applies the title rules. It is safe for concurrent use.
type Normalizer struct {
	numbering []rewrite
	opus      []rewrite
	style     []rewrite
}

var styleRules = []rewrite{
	{regexp.MustCompile(`(?i)\bsym(?:\.\s*|\s+)(\d)`), "Symphony $1"},
	{regexp.MustCompile(`(?i)\bsymphonie\s*#?\s*(\d)`), "Symphony #$1"},
	{regexp.MustCompile(`(?i)\bmin\.`), "min."},
	{regexp.MustCompile(`(?i)\bmaj\.`), "Maj."},
	{regexp.MustCompile(`(?i)\bmineur\b`), "min."},
	{regexp.MustCompile(`(?i)\bmajeur\b`), "Maj."},
	{regexp.MustCompile(`(?i)\bb[. ]*w[. ]*v[. #]*(\d)`), "BWV $1"},
	{regexp.MustCompile(`(?i)\bh[. ]*w[. ]*v[. #]*(\d)`), "HWV $1"},
	{regexp.MustCompile(`(?i)\bhob(?:\.\s*|\s+)([xvi]+a?)\b`), "Hob. $1"},
	{regexp.MustCompile(`\bK[ .]*(\d)`), "K. $1"},
	{regexp.MustCompile(`(?i)\banh[ .]*(\d)`), "Anh. $1"},
	{regexp.MustCompile(`,([^\s\d,])`), ", $1"},
	{regexp.MustCompile(`\s+:`), ":"},
	{regexp.MustCompile(`\s{2,}`), " "},
}

// New builds a Normalizer. Empty token lists select the defaults.
func New(rules Rules) *Normalizer {
	number := rules.NumberTokens
	if len(number) == 0 {
		number = DefaultNumberTokens
	}
	opus := rules.OpusTokens
	if len(opus) == 0 {
		opus = DefaultOpusTokens
	}
	return &Normalizer{
		numbering: []rewrite{
			{regexp.MustCompile(`(?i)\b` + alternation(number) + `\.?\s*(\d)`), "#$1"},
		},
		opus: []rewrite{
			{regexp.MustCompile(`(?i)\b` + alternation(opus) + `(?:\.\s*|\s*)(\d)`), "Op. $1"},
			{regexp.MustCompile(`(?i)\b` + alternation(opus) + `\.?\s*posth\b\.?`), "Op. posth."},
		},
		style: styleRules,
	}
}

// Default returns a Normalizer with the default token lists.
func Default() *Normalizer {
	return New(Rules{})
}

// alternation builds a non-capturing group, longest token first.
func alternation(tokens []string) string {
	sorted := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSuffix(strings.TrimSpace(t), ".")
		if t != "" {
			sorted = append(sorted, regexp.QuoteMeta(t))
		}
	}
	slices.SortStableFunc(sorted, func(a, b string) int { return len(b) - len(a) })
	return "(?:" + strings.Join(sorted, "|") + ")"
}

// NormalizeNumbering rewrites "No. 5", "Number 5", "Nr.5" and the other
// number tokens followed by a digit to "#5".
func (n *Normalizer) NormalizeNumbering(text string) string {
	return fixpoint(text, n.numbering)
}

// NormalizeOpus rewrites "Opus 27", "op.27" and "OP 27" to "Op. 27".
func (n *Normalizer) NormalizeOpus(text string) string {
	return fixpoint(text, n.opus)
}

// Normalize applies numbering, opus and the style rules (symphony and key
// abbreviations, catalogue designators, comma and colon spacing) and trims
// the result.
func (n *Normalizer) Normalize(text string) string {
	out := text
	for range maxPasses {
		next := fixpoint(out, n.numbering)
		next = fixpoint(next, n.opus)
		next = strings.TrimSpace(fixpoint(next, n.style))
		if next == out {
			break
		}
		out = next
	}
	return out
}

func fixpoint(s string, rules []rewrite) string {
	for range maxPasses {
		next := s
		for _, r := range rules {
			next = r.apply(next)
		}
		if next == s {
			break
		}
		s = next
	}
	return s
}
