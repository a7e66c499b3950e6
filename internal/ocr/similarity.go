package ocr

import (
	"strings"

	"github.com/arbovm/levenshtein"
)

// Similarity returns an edit-distance based score in [0, 1] between two
// strings: 1 means identical, 0 means nothing in common. Used as an OCR
// diagnostic; verification verdicts never depend on it.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.Distance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// ClosestToken returns the token of text with the highest Similarity to
// target, along with its score. Returns ("", 0) when text has no tokens.
// Helps diagnose near-misses where OCR mangled a word just enough to defeat
// substring matching.
func ClosestToken(target, text string) (string, float64) {
	best := ""
	bestScore := 0.0
	for _, token := range strings.Fields(strings.ToLower(text)) {
		score := Similarity(strings.ToLower(target), token)
		if score > bestScore {
			best = token
			bestScore = score
		}
	}
	return best, bestScore
}
