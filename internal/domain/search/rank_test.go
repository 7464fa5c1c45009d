package search

import (
	"testing"

	"github.com/mealmate/v2/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaries(names ...string) []recipe.Summary {
	out := make([]recipe.Summary, 0, len(names))
	for _, n := range names {
		out = append(out, recipe.Summary{Name: n, FolderID: recipe.UncategorizedFolderID})
	}
	return out
}

func TestRankSortsDescending(t *testing.T) {
	matches := Rank("chicken soup", summaries(
		"Beef Stew",            // 0, dropped
		"Chicken Noodle Soup",  // 70, both words
		"Chicken Soup",         // substring: round(12/12*100)+30 -> 100
		"Chicken Tikka Masala", // 35, one word
	))

	require.Len(t, matches, 3)
	assert.Equal(t, "Chicken Soup", matches[0].Recipe.Name)
	assert.Equal(t, 100, matches[0].Score)
	assert.Equal(t, "Chicken Noodle Soup", matches[1].Recipe.Name)
	assert.Equal(t, "Chicken Tikka Masala", matches[2].Recipe.Name)
}

func TestRankDropsZeroScores(t *testing.T) {
	matches := Rank("pizza", summaries("Chicken Soup", "Beef Stew"))
	assert.Empty(t, matches)
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	// Both candidates match exactly one of the two query words, scoring 35
	matches := Rank("beef stew", summaries("Beef Tacos", "Irish Stew Pie"))

	require.Len(t, matches, 2)
	assert.Equal(t, matches[0].Score, matches[1].Score)
	assert.Equal(t, "Beef Tacos", matches[0].Recipe.Name)
	assert.Equal(t, "Irish Stew Pie", matches[1].Recipe.Name)
}

func TestRankSkipsUnnamedCandidates(t *testing.T) {
	candidates := summaries("Chicken Soup")
	candidates = append(candidates, recipe.Summary{Name: ""})

	matches := Rank("chicken", candidates)
	require.Len(t, matches, 1)
	assert.Equal(t, "Chicken Soup", matches[0].Recipe.Name)
}

func TestRankEmptyCandidates(t *testing.T) {
	assert.Empty(t, Rank("chicken", nil))
}
