package recipe

import (
	"context"
	"testing"

	"github.com/mealmate/v2/internal/application/state"
	"github.com/mealmate/v2/internal/domain/recipe"
	"github.com/mealmate/v2/internal/ports/inbound"
	"github.com/mealmate/v2/pkg/errors"
	"github.com/mealmate/v2/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingRecorder tallies refresh outcomes by label
type countingRecorder struct {
	outcomes map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{outcomes: map[string]int{}}
}

func (c *countingRecorder) ObserveRefresh(outcome string) {
	c.outcomes[outcome]++
}

func newTestService(backend *testutils.MockBackend) (inbound.RecipeService, *state.AppState) {
	appState := state.New()
	return NewService(backend, appState, newCountingRecorder(), zap.NewNop()), appState
}

func TestRefreshAllInstallsFetchedData(t *testing.T) {
	backend := &testutils.MockBackend{
		ListFoldersFunc: func(ctx context.Context) ([]recipe.Folder, error) {
			return []recipe.Folder{{ID: recipe.UncategorizedFolderID, Name: "Uncategorized"}}, nil
		},
		ListRecipesFunc: func(ctx context.Context) ([]recipe.Summary, error) {
			return []recipe.Summary{{Name: "Chicken Soup", FolderID: recipe.UncategorizedFolderID}}, nil
		},
	}
	svc, appState := newTestService(backend)

	require.NoError(t, svc.RefreshAll(context.Background()))

	snap := appState.Snapshot()
	require.Len(t, snap.Folders, 1)
	require.Len(t, snap.Recipes, 1)
	assert.Equal(t, "Chicken Soup", snap.Recipes[0].Name)
}

func TestRefreshAllDegradesSilentlyWhenUnauthenticated(t *testing.T) {
	backend := &testutils.MockBackend{
		ListFoldersFunc: func(ctx context.Context) ([]recipe.Folder, error) {
			return nil, errors.NewUnauthenticatedError()
		},
		ListRecipesFunc: func(ctx context.Context) ([]recipe.Summary, error) {
			return nil, errors.NewUnauthenticatedError()
		},
	}
	svc, appState := newTestService(backend)

	require.NoError(t, svc.RefreshAll(context.Background()))

	snap := appState.Snapshot()
	assert.Empty(t, snap.Folders)
	assert.Empty(t, snap.Recipes)
}

func TestRefreshAllDegradesSilentlyOnFetchFailure(t *testing.T) {
	backend := &testutils.MockBackend{
		ListFoldersFunc: func(ctx context.Context) ([]recipe.Folder, error) {
			return nil, errors.NewBackendError("loading folders", "boom", nil)
		},
	}
	svc, _ := newTestService(backend)

	assert.NoError(t, svc.RefreshAll(context.Background()))
}

func TestRefreshOutcomesAreCounted(t *testing.T) {
	appState := state.New()
	recorder := newCountingRecorder()
	backend := &testutils.MockBackend{}
	svc := NewService(backend, appState, recorder, zap.NewNop())

	require.NoError(t, svc.RefreshAll(context.Background()))
	assert.Equal(t, 1, recorder.outcomes["applied"])
	assert.Zero(t, recorder.outcomes["discarded"])

	// A mutation bumps the counter mid-fetch, so this refresh is stale
	backend.ListRecipesFunc = func(ctx context.Context) ([]recipe.Summary, error) {
		appState.Bump()
		return nil, nil
	}
	require.NoError(t, svc.RefreshAll(context.Background()))
	assert.Equal(t, 1, recorder.outcomes["applied"])
	assert.Equal(t, 1, recorder.outcomes["discarded"])
}

func TestCreateFolderRefreshesCache(t *testing.T) {
	created := false
	backend := &testutils.MockBackend{
		CreateFolderFunc: func(ctx context.Context, name string) (recipe.Folder, error) {
			created = true
			return recipe.Folder{ID: "abc", Name: name}, nil
		},
		ListFoldersFunc: func(ctx context.Context) ([]recipe.Folder, error) {
			return []recipe.Folder{
				{ID: recipe.UncategorizedFolderID, Name: "Uncategorized"},
				{ID: "abc", Name: "Dinners"},
			}, nil
		},
	}
	svc, appState := newTestService(backend)

	require.NoError(t, svc.CreateFolder(context.Background(), "Dinners"))

	assert.True(t, created)
	assert.Len(t, appState.Snapshot().Folders, 2)

	notices := appState.Notices().Active()
	require.Len(t, notices, 1)
	assert.Equal(t, state.NoticeSuccess, notices[0].Level)
}

func TestCreateFolderRejectsBlankName(t *testing.T) {
	called := false
	backend := &testutils.MockBackend{
		CreateFolderFunc: func(ctx context.Context, name string) (recipe.Folder, error) {
			called = true
			return recipe.Folder{}, nil
		},
	}
	svc, _ := newTestService(backend)

	err := svc.CreateFolder(context.Background(), "   ")
	assert.True(t, errors.Is(err, errors.CodeValidationFailed))
	assert.False(t, called, "validation must happen before any network call")
}

func TestRenameProtectedFolderRejectedBeforeNetwork(t *testing.T) {
	called := false
	backend := &testutils.MockBackend{
		RenameFolderFunc: func(ctx context.Context, id, name string) error {
			called = true
			return nil
		},
	}
	svc, _ := newTestService(backend)

	err := svc.RenameFolder(context.Background(), recipe.UncategorizedFolderID, "Misc")
	assert.True(t, errors.Is(err, errors.CodeFolderProtected))
	assert.False(t, called)
}

func TestDeleteProtectedFolderRejected(t *testing.T) {
	svc, _ := newTestService(&testutils.MockBackend{})

	err := svc.DeleteFolder(context.Background(), recipe.UncategorizedFolderID)
	assert.True(t, errors.Is(err, errors.CodeFolderProtected))
}

func TestSaveManualValidatesBeforeNetwork(t *testing.T) {
	called := false
	backend := &testutils.MockBackend{
		SaveManualRecipeFunc: func(ctx context.Context, r recipe.Recipe) error {
			called = true
			return nil
		},
	}
	svc, _ := newTestService(backend)

	err := svc.SaveManual(context.Background(), inbound.SaveManualCommand{Name: "No Steps"})
	assert.True(t, errors.Is(err, errors.CodeValidationFailed))
	assert.False(t, called)
}

func TestSaveManualDefaultsToUncategorized(t *testing.T) {
	var saved recipe.Recipe
	backend := &testutils.MockBackend{
		SaveManualRecipeFunc: func(ctx context.Context, r recipe.Recipe) error {
			saved = r
			return nil
		},
	}
	svc, _ := newTestService(backend)

	err := svc.SaveManual(context.Background(), inbound.SaveManualCommand{
		Name:         "Toast",
		Ingredients:  []string{"bread"},
		Instructions: []string{"toast it"},
	})
	require.NoError(t, err)
	assert.Equal(t, recipe.UncategorizedFolderID, saved.FolderID)
}

func TestExtractFromURLRejectsNonHTTP(t *testing.T) {
	svc, _ := newTestService(&testutils.MockBackend{})

	_, err := svc.ExtractFromURL(context.Background(), "ftp://example.com/recipe", "")
	assert.True(t, errors.Is(err, errors.CodeValidationFailed))
}

func TestMoveRecipeRejectsSameFolder(t *testing.T) {
	svc, _ := newTestService(&testutils.MockBackend{})

	err := svc.MoveRecipe(context.Background(), "Chicken Soup", "abc", "abc")
	assert.True(t, errors.Is(err, errors.CodeValidationFailed))
}

func TestMutationFailurePropagatesBackendError(t *testing.T) {
	backend := &testutils.MockBackend{
		DeleteRecipeFunc: func(ctx context.Context, folderID, name string) error {
			return errors.NewBackendError("deleting recipe", "recipe is locked", nil)
		},
	}
	svc, appState := newTestService(backend)

	err := svc.DeleteRecipe(context.Background(), "abc", "Chicken Soup")
	require.Error(t, err)
	assert.Contains(t, errors.Wrap(err, "").UserMessage(), "recipe is locked")
	assert.Empty(t, appState.Notices().Active(), "no success notice on failure")
}

func TestSearchSavedRequiresQuery(t *testing.T) {
	svc, _ := newTestService(&testutils.MockBackend{})

	_, err := svc.SearchSaved("   ")
	assert.True(t, errors.Is(err, errors.CodeValidationFailed))
}

func TestSearchSavedReportsWhetherAnyRecipesExist(t *testing.T) {
	svc, appState := newTestService(&testutils.MockBackend{})

	result, err := svc.SearchSaved("chicken")
	require.NoError(t, err)
	assert.False(t, result.HaveSavedRecipes)
	assert.Empty(t, result.Matches)

	appState.Apply(appState.Version(), nil, []recipe.Summary{{Name: "Beef Stew"}})
	result, err = svc.SearchSaved("chicken")
	require.NoError(t, err)
	assert.True(t, result.HaveSavedRecipes)
	assert.Empty(t, result.Matches, "non-matching recipes are dropped, not ranked last")
}

func TestSearchSavedRanksMatches(t *testing.T) {
	svc, appState := newTestService(&testutils.MockBackend{})
	appState.Apply(appState.Version(), nil, []recipe.Summary{
		{Name: "Beef Stew"},
		{Name: "Chicken Noodle Soup"},
		{Name: "Chicken Soup"},
	})

	result, err := svc.SearchSaved("chicken soup")
	require.NoError(t, err)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "Chicken Soup", result.Matches[0].Recipe.Name)
	assert.Equal(t, "Chicken Noodle Soup", result.Matches[1].Recipe.Name)
}

func TestSearchWebRequiresQuery(t *testing.T) {
	svc, _ := newTestService(&testutils.MockBackend{})

	_, err := svc.SearchWeb(context.Background(), "")
	assert.True(t, errors.Is(err, errors.CodeValidationFailed))
}
