package names

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// DefaultSimilarityThreshold is the score above which two names are
// considered spellings of the same name.
const DefaultSimilarityThreshold = 0.85

// Similarity returns the normalized Levenshtein similarity of a and b,
// case-insensitive, in [0, 1].
func Similarity(a, b string) float32 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}
	sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return sim
}

// AreSimilar reports whether a and b score above threshold.
func AreSimilar(a, b string, threshold float64) bool {
	return float64(Similarity(a, b)) > threshold
}
