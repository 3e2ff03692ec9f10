// Package wordlist provides word pool filtering helpers.
package wordlist

import "strings"

// MinLetters is the shortest word accepted into a mob pool.
const MinLetters = 2

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// Normalize upper-cases and trims a raw word list entry.
func Normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// IsPlayable reports whether a normalized word consists of at least
// MinLetters ASCII capitals and nothing else.
func IsPlayable(word string) bool {
	if len(word) < MinLetters {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'A' || ch > 'Z' {
			return false
		}
	}
	return true
}

// Filter normalizes words, drops unplayable entries and duplicates, and
// keeps the first-seen order.
func Filter(words []string, keep FilterFunc) []string {
	if keep == nil {
		keep = IsPlayable
	}
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = Normalize(w)
		if !keep(w) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
