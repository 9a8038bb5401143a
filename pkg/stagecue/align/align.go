// Package align diffs a recited transcript against the expected script text
// at word level.
//
// The alignment is a classic Levenshtein alignment over normalized tokens
// (match 0, substitute 1, insert 1, delete 1). Several alignments can share
// the minimum cost; the backtrace resolves ties in a fixed order so the same
// inputs always produce the same diff:
//
//  1. equal tokens are taken as Correct, before consulting the table
//  2. Substitution when the diagonal accounts for the cost
//  3. Missing (expected word skipped) when the row above accounts for it
//  4. Extra (spoken word inserted) otherwise
//
// Other tie-break orders give equally optimal but different-looking diffs.
package align

import "slices"

// Kind identifies the outcome at one aligned position.
type Kind int

const (
	Correct Kind = iota
	Substitution
	Missing
	Extra
)

func (k Kind) String() string {
	switch k {
	case Correct:
		return "correct"
	case Substitution:
		return "substitution"
	case Missing:
		return "missing"
	case Extra:
		return "extra"
	default:
		return "unknown"
	}
}

// Result is one aligned position. Expected is empty for Extra and Actual is
// empty for Missing. Both hold surface forms, not normalized keys.
type Result struct {
	Kind     Kind
	Expected string
	Actual   string

	// Set by Annotate on substitutions only.
	Similarity  float64
	SoundsAlike bool
}

// Text returns the word to display for this position: the expected word for
// every kind except Extra.
func (r Result) Text() string {
	if r.Kind == Extra {
		return r.Actual
	}
	return r.Expected
}

// Match aligns the words of actual against the words of expected.
func Match(expected, actual string) []Result {
	return MatchTokens(Tokenize(expected), Tokenize(actual))
}

// MatchTokens aligns two already tokenized sequences. The result reads in
// expected-text order with extras placed where the alignment put them.
func MatchTokens(expected, actual []string) []Result {
	n, m := len(expected), len(actual)
	if n == 0 && m == 0 {
		return []Result{}
	}

	exp := normalizeAll(expected)
	act := normalizeAll(actual)
	dp := table(exp, act)

	results := make([]Result, 0, max(n, m))
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && exp[i-1] == act[j-1]:
			results = append(results, Result{Kind: Correct, Expected: expected[i-1], Actual: actual[j-1]})
			i--
			j--
		case i > 0 && j > 0 && dp[i][j] == dp[i-1][j-1]+1:
			results = append(results, Result{Kind: Substitution, Expected: expected[i-1], Actual: actual[j-1]})
			i--
			j--
		case i > 0 && (j == 0 || dp[i][j] == dp[i-1][j]+1):
			results = append(results, Result{Kind: Missing, Expected: expected[i-1]})
			i--
		default:
			results = append(results, Result{Kind: Extra, Actual: actual[j-1]})
			j--
		}
	}

	slices.Reverse(results)
	return results
}

// Distance returns the minimum word-level edit distance between two token
// sequences under the same normalization MatchTokens uses.
func Distance(expected, actual []string) int {
	dp := table(normalizeAll(expected), normalizeAll(actual))
	return dp[len(expected)][len(actual)]
}

// table fills dp[i][j], the minimum cost of aligning the first i expected
// keys with the first j actual keys.
func table(exp, act []string) [][]int {
	n, m := len(exp), len(act)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
		dp[i][0] = i
	}
	for j := 0; j <= m; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := 1
			if exp[i-1] == act[j-1] {
				cost = 0
			}
			dp[i][j] = min(
				dp[i-1][j]+1,
				dp[i][j-1]+1,
				dp[i-1][j-1]+cost,
			)
		}
	}
	return dp
}
