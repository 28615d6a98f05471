package ngram

import "strings"

// Counts is an n-gram multiset: space-joined lowercase n-gram → occurrences.
type Counts map[string]int

// Count builds the multiset of all contiguous n-token windows in tokens.
// Tokens are lowercased so matching is case-insensitive. A sentence shorter
// than n, or n < 1, yields an empty multiset.
func Count(tokens []string, n int) Counts {
	windows := Windows(len(tokens), n)
	counts := make(Counts, windows)
	for i := 0; i < windows; i++ {
		counts[Key(tokens[i:i+n])]++
	}
	return counts
}

// Windows returns the number of n-gram windows in a sentence of length
// tokens, never negative.
func Windows(length, n int) int {
	if n < 1 || length < n {
		return 0
	}
	return length - n + 1
}

// Key returns the canonical form of an n-gram.
func Key(gram []string) string {
	return strings.ToLower(strings.Join(gram, " "))
}
