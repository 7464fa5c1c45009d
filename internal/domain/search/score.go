// Package search implements the fuzzy similarity scoring used to match a
// free-text query against saved recipe names. Scores are integers in
// [0,100], deterministic for a given (query, name) pair, and recomputed on
// every query.
package search

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Score rates how well query matches candidate, case-insensitively.
//
// Three rules apply, first match wins:
//  1. candidate contains the whole query as a substring:
//     min(100, round(len(query)/len(candidate)*100) + 30)
//  2. multi-word query: round(fraction of query words found * 70)
//  3. single-word query: best per-word containment ratio * 60, where a
//     reverse containment (query contains the candidate word) is discounted
//     to 0.8 of the ratio.
//
// Lengths are rune counts. A zero score means "no match at all" and callers
// drop such candidates entirely.
func Score(query, candidate string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	name := strings.ToLower(candidate)
	if q == "" || name == "" {
		return 0
	}

	if strings.Contains(name, q) {
		ratio := float64(utf8.RuneCountInString(q)) / float64(utf8.RuneCountInString(candidate))
		score := int(math.Round(ratio*100)) + 30
		if score > 100 {
			score = 100
		}
		return score
	}

	words := strings.Fields(q)
	if len(words) > 1 {
		found := 0
		for _, w := range words {
			if strings.Contains(name, w) {
				found++
			}
		}
		return int(math.Round(float64(found) / float64(len(words)) * 70))
	}

	word := words[0]
	wordLen := float64(utf8.RuneCountInString(word))
	best := 0.0
	for _, nameWord := range strings.Fields(name) {
		nameWordLen := float64(utf8.RuneCountInString(nameWord))
		switch {
		case strings.Contains(nameWord, word):
			best = math.Max(best, wordLen/nameWordLen)
		case strings.Contains(word, nameWord):
			best = math.Max(best, nameWordLen/wordLen*0.8)
		}
	}
	return int(math.Round(best * 60))
}
