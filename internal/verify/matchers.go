package verify

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// abvTolerance is the absolute tolerance applied when comparing the expected
// alcohol content against percentages read off the label.
const abvTolerance = 0.5

// tokenMatchThreshold is the fraction of a multi-word expected value's tokens
// that must appear on the label for a partial match.
const tokenMatchThreshold = 0.7

var abvStripPattern = regexp.MustCompile(`[%\s]`)

// warningPhrases are fragments of the standardized health warning that tend
// to survive noisy OCR even when the "GOVERNMENT WARNING" heading does not.
var warningPhrases = []string{"pregnant", "driving", "operating machinery", "health problems"}

// CheckTextField reports whether the expected value appears on the label,
// either as a contiguous substring of the normalized text or, for multi-word
// values, as at least 70% of its tokens found individually (OCR may drop a
// word).
func CheckTextField(labelText, expected, fieldName string) (bool, string) {
	if expected == "" {
		return false, fmt.Sprintf("%s not provided in form", fieldName)
	}

	labelNorm := Normalize(labelText)
	expectedNorm := Normalize(expected)

	if strings.Contains(labelNorm, expectedNorm) {
		return true, fmt.Sprintf("%s found on label", fieldName)
	}

	tokens := strings.Fields(expectedNorm)
	if len(tokens) > 1 {
		found := 0
		for _, token := range tokens {
			if strings.Contains(labelNorm, token) {
				found++
			}
		}
		if float64(found) >= float64(len(tokens))*tokenMatchThreshold {
			return true, fmt.Sprintf("%s partially matched", fieldName)
		}
	}

	return false, fmt.Sprintf("%s not found on label", fieldName)
}

// CheckAlcoholContent compares the expected ABV against percentages extracted
// from the label, within an absolute tolerance of 0.5 for OCR misreads. A
// malformed expected value is a failed check, not an error.
func CheckAlcoholContent(labelText, expected string) (bool, string) {
	if expected == "" {
		return false, "Alcohol content not provided"
	}

	expectedVal, err := strconv.ParseFloat(abvStripPattern.ReplaceAllString(expected, ""), 64)
	if err != nil {
		return false, fmt.Sprintf("Invalid alcohol content: %s", expected)
	}

	candidates := ExtractPercentages(labelText)
	if len(candidates) == 0 {
		return false, fmt.Sprintf("Alcohol content not found on label (expected %s%%)", formatPercent(expectedVal))
	}

	for _, candidate := range candidates {
		if math.Abs(candidate-expectedVal) <= abvTolerance {
			return true, fmt.Sprintf("Alcohol content matches: %s%%", formatPercent(candidate))
		}
	}

	return false, fmt.Sprintf("Alcohol content mismatch: found %s%%, expected %s%%",
		formatPercent(candidates[0]), formatPercent(expectedVal))
}

// CheckNetContents compares the expected fill volume against volumes
// extracted from the label. Net contents is an optional field, so an empty
// expected value passes. Containment is checked in both directions to
// tolerate formatting differences such as "750ml" vs "750 ml"; note the same
// rule lets "5 ml" match inside "25 ml".
func CheckNetContents(labelText, expected string) (bool, string) {
	if expected == "" {
		return true, "Net contents not required"
	}

	candidates := ExtractVolumes(labelText)
	if len(candidates) == 0 {
		return false, fmt.Sprintf("Net contents not found on label (expected %s)", expected)
	}

	expectedNorm := Normalize(expected)
	for _, candidate := range candidates {
		candidateNorm := Normalize(candidate)
		if strings.Contains(candidateNorm, expectedNorm) || strings.Contains(expectedNorm, candidateNorm) {
			return true, fmt.Sprintf("Net contents matches: %s", candidate)
		}
	}

	return false, fmt.Sprintf("Net contents mismatch: found %s, expected %s", candidates[0], expected)
}

// CheckGovernmentWarning looks for the mandated health warning on the label.
// It takes no expected value: the exact phrase passes immediately, otherwise
// at least two of the key warning phrases must be present.
func CheckGovernmentWarning(labelText string) (bool, string) {
	norm := Normalize(labelText)
	if strings.Contains(norm, "government warning") {
		return true, "Government warning found on label"
	}

	found := 0
	for _, phrase := range warningPhrases {
		if strings.Contains(norm, phrase) {
			found++
		}
	}
	if found >= 2 {
		return true, "Government warning partially found"
	}

	return false, "Government warning not found on label"
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
