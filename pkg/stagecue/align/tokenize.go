package align

import (
	"strings"
	"unicode"
)

// Tokenize splits text on whitespace and newlines. Empty tokens are dropped,
// so empty or blank input yields an empty slice.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// Normalize returns the comparison key for a token: lower-cased with leading
// and trailing punctuation removed. Interior punctuation ("don't") is kept.
func Normalize(token string) string {
	return strings.TrimFunc(strings.ToLower(token), unicode.IsPunct)
}

// SameWord reports whether two surface tokens compare equal.
func SameWord(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

func normalizeAll(tokens []string) []string {
	keys := make([]string, len(tokens))
	for i, t := range tokens {
		keys[i] = Normalize(t)
	}
	return keys
}
