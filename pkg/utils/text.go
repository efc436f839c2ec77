package utils

import "strings"

// NormalizeAnswer lowercases, trims and collapses inner whitespace so that
// " Addis  Ababa " and "addis ababa" compare equal.
func NormalizeAnswer(input string) string {
	return strings.ToLower(strings.Join(strings.Fields(input), " "))
}

// TruncateText cuts a string to at most n runes, appending an ellipsis when
// anything was removed.
func TruncateText(input string, n int) string {
	runes := []rune(input)
	if len(runes) <= n {
		return input
	}
	return string(runes[:n]) + "…"
}
