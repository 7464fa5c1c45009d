package search

import (
	"sort"

	"github.com/mealmate/v2/internal/domain/recipe"
)

// Match pairs a recipe with its similarity score. Matches are ephemeral
// derived values, never persisted.
type Match struct {
	Recipe recipe.Summary `json:"recipe"`
	Score  int            `json:"score"`
}

// Rank scores every candidate against query and returns the matches sorted
// descending by score. Candidates scoring zero are dropped, not ranked last.
// Ties keep the candidates' original relative order. An empty result is a
// valid outcome, not an error; the caller distinguishes "no saved recipes"
// from "nothing matched" for its empty-state messaging.
func Rank(query string, candidates []recipe.Summary) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		if c.Name == "" {
			continue
		}
		if score := Score(query, c.Name); score > 0 {
			matches = append(matches, Match{Recipe: c, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
