package utils

import "strings"

// TruncateForLog turns s into a single-line preview of at most limit runes. Runs of
// whitespace, such as the newlines of indented JSON bodies and prompts, collapse to
// one space. A truncated preview ends with "...".
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
