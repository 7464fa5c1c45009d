package devserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mealmate/v2/internal/domain/grocery"
	"github.com/mealmate/v2/internal/domain/recipe"
	"github.com/mealmate/v2/internal/infrastructure/api"
	"github.com/mealmate/v2/internal/infrastructure/config"
	"github.com/mealmate/v2/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestBackend runs the dev backend behind httptest and returns the real
// API client pointed at it, exercising both sides of the wire contract
func newTestBackend(t *testing.T) *api.Client {
	t.Helper()

	server := httptest.NewServer(NewServer(zap.NewNop()).Router())
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Backend.URL = server.URL
	cfg.Backend.Timeout = 5 * time.Second
	return api.NewClient(cfg, zap.NewNop())
}

func TestProtectedFolderAlwaysPresent(t *testing.T) {
	client := newTestBackend(t)

	folders, err := client.ListFolders(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, folders)
	assert.Equal(t, recipe.UncategorizedFolderID, folders[0].ID)
	assert.True(t, folders[0].Protected())
	assert.Positive(t, folders[0].RecipeCount, "seed recipes live in the protected folder")
}

func TestFolderLifecycle(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	created, err := client.CreateFolder(ctx, "Dinners")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	require.NoError(t, client.RenameFolder(ctx, created.ID, "Weeknight Dinners"))

	folders, err := client.ListFolders(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, "Weeknight Dinners", folders[1].Name)

	require.NoError(t, client.DeleteFolder(ctx, created.ID))
	folders, err = client.ListFolders(ctx)
	require.NoError(t, err)
	assert.Len(t, folders, 1)
}

func TestProtectedFolderMutationsRejected(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	err := client.RenameFolder(ctx, recipe.UncategorizedFolderID, "Misc")
	assert.True(t, errors.Is(err, errors.CodeBackendError))

	err = client.DeleteFolder(ctx, recipe.UncategorizedFolderID)
	assert.True(t, errors.Is(err, errors.CodeBackendError))
}

func TestDeleteFolderReassignsRecipes(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	folder, err := client.CreateFolder(ctx, "Soups")
	require.NoError(t, err)

	require.NoError(t, client.SaveManualRecipe(ctx, recipe.Recipe{
		Name:         "Tomato Soup",
		FolderID:     folder.ID,
		Ingredients:  []string{"4 tomatoes"},
		Instructions: []string{"Blend and heat."},
	}))

	require.NoError(t, client.DeleteFolder(ctx, folder.ID))

	recipes, err := client.ListFolderRecipes(ctx, recipe.UncategorizedFolderID)
	require.NoError(t, err)

	names := make([]string, 0, len(recipes))
	for _, r := range recipes {
		names = append(names, r.Name)
	}
	assert.Contains(t, names, "Tomato Soup")
}

func TestDuplicateRecipeNameInFolderRejected(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	r := recipe.Recipe{
		Name:         "Pancakes",
		Ingredients:  []string{"1 cup flour"},
		Instructions: []string{"Mix and fry."},
	}
	require.NoError(t, client.SaveManualRecipe(ctx, r))

	err := client.SaveManualRecipe(ctx, r)
	assert.True(t, errors.Is(err, errors.CodeBackendError))
}

func TestMoveRecipeBetweenFolders(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	folder, err := client.CreateFolder(ctx, "Soups")
	require.NoError(t, err)

	require.NoError(t, client.MoveRecipe(ctx, "Chicken Noodle Soup", recipe.UncategorizedFolderID, folder.ID))

	moved, err := client.GetRecipe(ctx, folder.ID, "Chicken Noodle Soup")
	require.NoError(t, err)
	assert.Equal(t, folder.ID, moved.FolderID)

	_, err = client.GetRecipe(ctx, recipe.UncategorizedFolderID, "Chicken Noodle Soup")
	assert.Error(t, err)
}

func TestExtractRecipeSavesIntoFolder(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	extracted, err := client.ExtractRecipe(ctx, "https://example.com/best-soup", recipe.UncategorizedFolderID)
	require.NoError(t, err)
	assert.NotEmpty(t, extracted.Name)
	assert.NotEmpty(t, extracted.Ingredients)

	_, err = client.GetRecipe(ctx, recipe.UncategorizedFolderID, extracted.Name)
	assert.NoError(t, err)
}

func TestWebSearchReturnsCandidates(t *testing.T) {
	client := newTestBackend(t)

	results, err := client.SearchWeb(context.Background(), "spicy noodles")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.NoError(t, r.Validate())
	}
}

func TestMealPlanAggregatesIngredients(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	list, err := client.CreateMealPlan(ctx, []string{"Chicken Noodle Soup", "Vegetable Stir Fry"}, "2026-01-05", "2026-01-07")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicken Noodle Soup", "Vegetable Stir Fry"}, list.MealPlan)
	assert.Equal(t, 3, list.DateRange.Days)
	assert.Len(t, list.Items, 7, "four soup lines plus three stir fry lines, no overlap")
}

func TestMealPlanWithUnknownRecipe(t *testing.T) {
	client := newTestBackend(t)

	_, err := client.CreateMealPlan(context.Background(), []string{"No Such Dish"}, "2026-01-05", "2026-01-07")
	assert.True(t, errors.Is(err, errors.CodeBackendError))
}

func TestGroceryListLifecycle(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	id, err := client.SaveGroceryList(ctx, grocery.List{
		Items:     []string{"2 carrots", "1 onion"},
		MealPlan:  []string{"Chicken Noodle Soup"},
		DateRange: grocery.DateRange{Start: "2026-01-05", End: "2026-01-07", Days: 3},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	lists, err := client.ListGroceryLists(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, id, lists[0].ID)

	fetched, err := client.GetGroceryList(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"2 carrots", "1 onion"}, fetched.Items)

	require.NoError(t, client.DeleteGroceryList(ctx, id))
	lists, err = client.ListGroceryLists(ctx)
	require.NoError(t, err)
	assert.Empty(t, lists)
}
