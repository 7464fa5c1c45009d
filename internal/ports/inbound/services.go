// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the HTTP frontend drives.
package inbound

import (
	"context"

	"github.com/mealmate/v2/internal/domain/grocery"
	"github.com/mealmate/v2/internal/domain/recipe"
	"github.com/mealmate/v2/internal/domain/search"
)

// SaveManualCommand carries a user-entered recipe. Validation runs before
// any network call.
type SaveManualCommand struct {
	Name         string   `json:"name" validate:"required"`
	FolderID     string   `json:"folder_id"`
	ServingSize  string   `json:"serving_size"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Instructions []string `json:"instructions" validate:"required,min=1,dive,required"`
}

// PlanCommand carries a meal-plan request: selected recipe names plus the
// planning period in YYYY-MM-DD form.
type PlanCommand struct {
	RecipeNames []string `json:"recipes"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
}

// SavedSearchResult is the outcome of a similarity search over the cached
// saved recipes. HaveSavedRecipes lets the caller tell "no saved recipes at
// all" apart from "nothing matched".
type SavedSearchResult struct {
	Query            string         `json:"query"`
	Matches          []search.Match `json:"matches"`
	HaveSavedRecipes bool           `json:"have_saved_recipes"`
}

// RecipeService covers folder and recipe management plus search. Every
// mutation refreshes the folder and recipe caches before returning.
type RecipeService interface {
	RefreshAll(ctx context.Context) error
	Folders() []recipe.Folder
	Recipes() []recipe.Summary

	CreateFolder(ctx context.Context, name string) error
	RenameFolder(ctx context.Context, id, name string) error
	DeleteFolder(ctx context.Context, id string) error

	FolderRecipes(ctx context.Context, folderID string) ([]recipe.Summary, error)
	RecipeDetails(ctx context.Context, folderID, name string) (recipe.Recipe, error)
	SaveManual(ctx context.Context, cmd SaveManualCommand) error
	ExtractFromURL(ctx context.Context, url, folderID string) (recipe.Recipe, error)
	SaveSearchResult(ctx context.Context, r recipe.Recipe, folderID string) error
	MoveRecipe(ctx context.Context, name, fromFolder, toFolder string) error
	DeleteRecipe(ctx context.Context, folderID, name string) error

	SearchSaved(query string) (SavedSearchResult, error)
	SearchWeb(ctx context.Context, query string) ([]recipe.Recipe, error)
}

// PlannerService covers meal plans, saved grocery lists and the checklist
// state of the currently displayed list.
type PlannerService interface {
	PlanMeals(ctx context.Context, cmd PlanCommand) (grocery.List, error)
	SavedLists(ctx context.Context) ([]grocery.List, error)
	ViewList(ctx context.Context, id string) (grocery.List, error)
	DeleteList(ctx context.Context, id string) error
	SaveCurrent(ctx context.Context) error
	Current() (grocery.List, bool)

	ToggleItem(ctx context.Context, index int) (bool, error)
	SetAllItems(ctx context.Context, checked bool) error
	ChecklistState() map[int]bool
}
