package verify

import "strings"

// Normalize folds raw label text into a canonical comparable form: lowercase,
// every run of whitespace (including tabs and newlines) collapsed to a single
// space, leading and trailing whitespace trimmed. Idempotent; empty input
// yields an empty string. Pure function, no error conditions.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
