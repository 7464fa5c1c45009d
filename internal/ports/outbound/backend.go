// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces the application uses to reach external systems.
package outbound

import (
	"context"

	"github.com/mealmate/v2/internal/domain/grocery"
	"github.com/mealmate/v2/internal/domain/recipe"
)

// Backend is the JSON/HTTP collaborator that owns recipe extraction,
// ingredient aggregation and all server-side storage. Every call is a single
// request/response round trip: no retries, no caching at this layer.
type Backend interface {
	// Folders
	ListFolders(ctx context.Context) ([]recipe.Folder, error)
	CreateFolder(ctx context.Context, name string) (recipe.Folder, error)
	RenameFolder(ctx context.Context, id, name string) error
	DeleteFolder(ctx context.Context, id string) error

	// Recipes
	ListRecipes(ctx context.Context) ([]recipe.Summary, error)
	ListFolderRecipes(ctx context.Context, folderID string) ([]recipe.Summary, error)
	GetRecipe(ctx context.Context, folderID, name string) (recipe.Recipe, error)
	SaveManualRecipe(ctx context.Context, r recipe.Recipe) error
	ExtractRecipe(ctx context.Context, url, folderID string) (recipe.Recipe, error)
	SaveSearchResult(ctx context.Context, r recipe.Recipe, folderID string) error
	MoveRecipe(ctx context.Context, name, fromFolder, toFolder string) error
	DeleteRecipe(ctx context.Context, folderID, name string) error
	SearchWeb(ctx context.Context, query string) ([]recipe.Recipe, error)

	// Meal plans and grocery lists
	CreateMealPlan(ctx context.Context, recipeNames []string, startDate, endDate string) (grocery.List, error)
	SaveGroceryList(ctx context.Context, list grocery.List) (string, error)
	ListGroceryLists(ctx context.Context) ([]grocery.List, error)
	GetGroceryList(ctx context.Context, id string) (grocery.List, error)
	DeleteGroceryList(ctx context.Context, id string) error
}
