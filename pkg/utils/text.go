package utils

import "unicode/utf8"

// Truncate shortens s to at most max bytes and appends an ellipsis. The cut
// backs up to a rune boundary so multi-byte characters are never split.
// A max of 0 or less disables truncation.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
