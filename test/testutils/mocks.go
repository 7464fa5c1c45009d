package testutils

import (
	"context"

	"github.com/mealmate/v2/internal/domain/grocery"
	"github.com/mealmate/v2/internal/domain/recipe"
	"github.com/mealmate/v2/internal/ports/outbound"
)

// MockBackend is a function-field fake of the backend port. Unset fields
// return zero values, so a test only wires the calls it cares about.
type MockBackend struct {
	ListFoldersFunc       func(ctx context.Context) ([]recipe.Folder, error)
	CreateFolderFunc      func(ctx context.Context, name string) (recipe.Folder, error)
	RenameFolderFunc      func(ctx context.Context, id, name string) error
	DeleteFolderFunc      func(ctx context.Context, id string) error
	ListRecipesFunc       func(ctx context.Context) ([]recipe.Summary, error)
	ListFolderRecipesFunc func(ctx context.Context, folderID string) ([]recipe.Summary, error)
	GetRecipeFunc         func(ctx context.Context, folderID, name string) (recipe.Recipe, error)
	SaveManualRecipeFunc  func(ctx context.Context, r recipe.Recipe) error
	ExtractRecipeFunc     func(ctx context.Context, pageURL, folderID string) (recipe.Recipe, error)
	SaveSearchResultFunc  func(ctx context.Context, r recipe.Recipe, folderID string) error
	MoveRecipeFunc        func(ctx context.Context, name, fromFolder, toFolder string) error
	DeleteRecipeFunc      func(ctx context.Context, folderID, name string) error
	SearchWebFunc         func(ctx context.Context, query string) ([]recipe.Recipe, error)
	CreateMealPlanFunc    func(ctx context.Context, recipeNames []string, startDate, endDate string) (grocery.List, error)
	SaveGroceryListFunc   func(ctx context.Context, list grocery.List) (string, error)
	ListGroceryListsFunc  func(ctx context.Context) ([]grocery.List, error)
	GetGroceryListFunc    func(ctx context.Context, id string) (grocery.List, error)
	DeleteGroceryListFunc func(ctx context.Context, id string) error
}

var _ outbound.Backend = (*MockBackend)(nil)

func (m *MockBackend) ListFolders(ctx context.Context) ([]recipe.Folder, error) {
	if m.ListFoldersFunc != nil {
		return m.ListFoldersFunc(ctx)
	}
	return nil, nil
}

func (m *MockBackend) CreateFolder(ctx context.Context, name string) (recipe.Folder, error) {
	if m.CreateFolderFunc != nil {
		return m.CreateFolderFunc(ctx, name)
	}
	return recipe.Folder{}, nil
}

func (m *MockBackend) RenameFolder(ctx context.Context, id, name string) error {
	if m.RenameFolderFunc != nil {
		return m.RenameFolderFunc(ctx, id, name)
	}
	return nil
}

func (m *MockBackend) DeleteFolder(ctx context.Context, id string) error {
	if m.DeleteFolderFunc != nil {
		return m.DeleteFolderFunc(ctx, id)
	}
	return nil
}

func (m *MockBackend) ListRecipes(ctx context.Context) ([]recipe.Summary, error) {
	if m.ListRecipesFunc != nil {
		return m.ListRecipesFunc(ctx)
	}
	return nil, nil
}

func (m *MockBackend) ListFolderRecipes(ctx context.Context, folderID string) ([]recipe.Summary, error) {
	if m.ListFolderRecipesFunc != nil {
		return m.ListFolderRecipesFunc(ctx, folderID)
	}
	return nil, nil
}

func (m *MockBackend) GetRecipe(ctx context.Context, folderID, name string) (recipe.Recipe, error) {
	if m.GetRecipeFunc != nil {
		return m.GetRecipeFunc(ctx, folderID, name)
	}
	return recipe.Recipe{}, nil
}

func (m *MockBackend) SaveManualRecipe(ctx context.Context, r recipe.Recipe) error {
	if m.SaveManualRecipeFunc != nil {
		return m.SaveManualRecipeFunc(ctx, r)
	}
	return nil
}

func (m *MockBackend) ExtractRecipe(ctx context.Context, pageURL, folderID string) (recipe.Recipe, error) {
	if m.ExtractRecipeFunc != nil {
		return m.ExtractRecipeFunc(ctx, pageURL, folderID)
	}
	return recipe.Recipe{}, nil
}

func (m *MockBackend) SaveSearchResult(ctx context.Context, r recipe.Recipe, folderID string) error {
	if m.SaveSearchResultFunc != nil {
		return m.SaveSearchResultFunc(ctx, r, folderID)
	}
	return nil
}

func (m *MockBackend) MoveRecipe(ctx context.Context, name, fromFolder, toFolder string) error {
	if m.MoveRecipeFunc != nil {
		return m.MoveRecipeFunc(ctx, name, fromFolder, toFolder)
	}
	return nil
}

func (m *MockBackend) DeleteRecipe(ctx context.Context, folderID, name string) error {
	if m.DeleteRecipeFunc != nil {
		return m.DeleteRecipeFunc(ctx, folderID, name)
	}
	return nil
}

func (m *MockBackend) SearchWeb(ctx context.Context, query string) ([]recipe.Recipe, error) {
	if m.SearchWebFunc != nil {
		return m.SearchWebFunc(ctx, query)
	}
	return nil, nil
}

func (m *MockBackend) CreateMealPlan(ctx context.Context, recipeNames []string, startDate, endDate string) (grocery.List, error) {
	if m.CreateMealPlanFunc != nil {
		return m.CreateMealPlanFunc(ctx, recipeNames, startDate, endDate)
	}
	return grocery.List{}, nil
}

func (m *MockBackend) SaveGroceryList(ctx context.Context, list grocery.List) (string, error) {
	if m.SaveGroceryListFunc != nil {
		return m.SaveGroceryListFunc(ctx, list)
	}
	return "", nil
}

func (m *MockBackend) ListGroceryLists(ctx context.Context) ([]grocery.List, error) {
	if m.ListGroceryListsFunc != nil {
		return m.ListGroceryListsFunc(ctx)
	}
	return nil, nil
}

func (m *MockBackend) GetGroceryList(ctx context.Context, id string) (grocery.List, error) {
	if m.GetGroceryListFunc != nil {
		return m.GetGroceryListFunc(ctx, id)
	}
	return grocery.List{}, nil
}

func (m *MockBackend) DeleteGroceryList(ctx context.Context, id string) error {
	if m.DeleteGroceryListFunc != nil {
		return m.DeleteGroceryListFunc(ctx, id)
	}
	return nil
}
