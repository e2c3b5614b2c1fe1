package match

import (
	"math"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity computes a 0-100 similarity between two strings.
//
// Both inputs are normalized before comparison. An empty raw input scores 0.
// Identical normalized forms score 100; otherwise the score is the Levenshtein
// distance converted to a ratio over the longer normalized string:
//
//	round(100 * (maxLen - distance) / maxLen)
//
// The metric is symmetric, deterministic, and bounded to [0, 100].
func Similarity(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 100
	}

	maxLen := utf8.RuneCountInString(na)
	if l := utf8.RuneCountInString(nb); l > maxLen {
		maxLen = l
	}

	distance := levenshtein.ComputeDistance(na, nb)
	return int(math.Round(100 * float64(maxLen-distance) / float64(maxLen)))
}
