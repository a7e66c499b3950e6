package verify

import (
	"regexp"
	"strconv"
	"strings"
)

// Package-level compiled patterns, matched against lowercased text.
var (
	percentPattern = regexp.MustCompile(`(\d+\.?\d*)\s*%`)

	// Volume unit patterns tried in fixed priority order. A magnitude that
	// matches more than one pattern (ambiguous OCR) is emitted once per
	// pattern; duplicates are not merged.
	volumePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+\.?\d*)\s*(ml)`),
		regexp.MustCompile(`(\d+\.?\d*)\s*(fl\s*oz|oz)`),
		regexp.MustCompile(`(\d+\.?\d*)\s*(l)`),
	}
)

// ExtractPercentages scans text for "<number>%" patterns and returns the
// parsed values in first-occurrence order. Values outside [0, 100] are
// treated as OCR noise and dropped, not reported as errors.
func ExtractPercentages(text string) []float64 {
	var percentages []float64
	for _, m := range percentPattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		val, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if val >= 0 && val <= 100 {
			percentages = append(percentages, val)
		}
	}
	return percentages
}

// ExtractVolumes scans text for volume patterns like "750 ml" or "12 fl oz"
// and returns candidates formatted as "<magnitude> <unit-as-matched>". The
// unit is kept exactly as it appeared, so "fl  oz" retains its internal
// spacing.
func ExtractVolumes(text string) []string {
	lower := strings.ToLower(text)
	var volumes []string
	for _, pattern := range volumePatterns {
		for _, m := range pattern.FindAllStringSubmatch(lower, -1) {
			volumes = append(volumes, m[1]+" "+m[2])
		}
	}
	return volumes
}
