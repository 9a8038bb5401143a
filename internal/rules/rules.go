// Package rules implements the ordered keyword decision tables used to turn
// free-text delivery descriptors into concrete values.
//
// A Table is evaluated top to bottom against a lower-cased descriptor; the
// first rule with any keyword contained in the descriptor wins, otherwise the
// table's Default is returned. Priority is therefore the slice order.
package rules

import "strings"

// Rule pairs a keyword set with the value it selects.
type Rule[T any] struct {
	Keywords []string
	Value    T
}

// Table is an ordered list of rules with a fallback value.
type Table[T any] struct {
	Rules   []Rule[T]
	Default T
}

// Lookup returns the value of the first rule matching text.
func (t Table[T]) Lookup(text string) T {
	v, _ := t.Match(text)
	return v
}

// Match is like Lookup but also reports the index of the matching rule, or -1
// when the default was used.
func (t Table[T]) Match(text string) (T, int) {
	lower := strings.ToLower(text)
	for i, r := range t.Rules {
		if containsAny(lower, r.Keywords) {
			return r.Value, i
		}
	}
	return t.Default, -1
}

// ContainsAny reports whether the lower-cased text contains any keyword.
func ContainsAny(text string, keywords ...string) bool {
	return containsAny(strings.ToLower(text), keywords)
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
