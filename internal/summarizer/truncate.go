package summarizer

import (
	"strings"
	"unicode"
)

// Ellipsis marks truncated output.
const Ellipsis = "..."

// truncate cuts s to at most maxChars runes, backing up to the last word
// boundary, and appends Ellipsis. Strings within budget are returned as is.
func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if maxChars <= 0 || len(runes) <= maxChars {
		return s
	}

	cut := runes[:maxChars]
	if !unicode.IsSpace(runes[maxChars]) {
		if i := lastSpace(cut); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRightFunc(string(cut), unicode.IsSpace) + Ellipsis
}

func lastSpace(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if unicode.IsSpace(r[i]) {
			return i
		}
	}
	return -1
}

// limitWords keeps the first n whitespace-separated words of s.
func limitWords(s string, n int) string {
	fields := strings.Fields(s)
	if n <= 0 || len(fields) <= n {
		return s
	}
	return strings.Join(fields[:n], " ")
}
