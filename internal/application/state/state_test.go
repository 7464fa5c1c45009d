package state

import (
	"testing"

	"github.com/mealmate/v2/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyInstallsData(t *testing.T) {
	s := New()
	version := s.Version()

	applied := s.Apply(version,
		[]recipe.Folder{{ID: recipe.UncategorizedFolderID, Name: "Uncategorized"}},
		[]recipe.Summary{{Name: "Chicken Soup"}},
	)

	assert.True(t, applied)
	snap := s.Snapshot()
	require.Len(t, snap.Folders, 1)
	require.Len(t, snap.Recipes, 1)
}

func TestApplyDiscardsStaleRefresh(t *testing.T) {
	s := New()
	require.True(t, s.Apply(s.Version(), nil, []recipe.Summary{{Name: "Old"}}))

	// A refresh starts, then a mutation bumps the counter before it applies
	staleVersion := s.Version()
	s.Bump()

	applied := s.Apply(staleVersion, nil, []recipe.Summary{{Name: "Stale"}})
	assert.False(t, applied)
	assert.Equal(t, "Old", s.Snapshot().Recipes[0].Name)
}

func TestApplyAtCurrentVersionWins(t *testing.T) {
	s := New()
	s.Bump()

	// A refresh started after the bump carries the bumped version
	applied := s.Apply(s.Version(), nil, []recipe.Summary{{Name: "Fresh"}})
	assert.True(t, applied)
	assert.Equal(t, "Fresh", s.Snapshot().Recipes[0].Name)
}

func TestBumpIsMonotonic(t *testing.T) {
	s := New()
	first := s.Bump()
	second := s.Bump()
	assert.Greater(t, second, first)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	require.True(t, s.Apply(s.Version(), []recipe.Folder{{ID: "a", Name: "A"}}, nil))

	snap := s.Snapshot()
	snap.Folders[0].Name = "mutated"
	assert.Equal(t, "A", s.Snapshot().Folders[0].Name)
}
