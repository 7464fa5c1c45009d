// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/mealmate/v2/internal/domain/grocery"
	"github.com/mealmate/v2/internal/domain/recipe"
)

// RecipeFactory creates test recipes and folders from a seeded faker so
// failures reproduce deterministically
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a recipe factory with the given seed
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Folder creates a folder with a random name
func (f *RecipeFactory) Folder() recipe.Folder {
	return recipe.Folder{
		ID:   uuid.New().String(),
		Name: f.faker.Adjective() + " recipes",
	}
}

// UncategorizedFolder creates the protected default folder
func (f *RecipeFactory) UncategorizedFolder() recipe.Folder {
	return recipe.Folder{ID: recipe.UncategorizedFolderID, Name: "Uncategorized"}
}

// Recipe creates a valid full recipe in folderID
func (f *RecipeFactory) Recipe(folderID string) recipe.Recipe {
	ingredients := make([]string, 3)
	for i := range ingredients {
		ingredients[i] = fmt.Sprintf("1 cup %s", f.faker.Vegetable())
	}
	return recipe.Recipe{
		Name:        f.faker.Dinner(),
		FolderID:    folderID,
		ServingSize: fmt.Sprintf("%d servings", f.faker.Number(2, 8)),
		Ingredients: ingredients,
		Instructions: []string{
			"Prepare all ingredients.",
			"Cook until done.",
		},
	}
}

// Summary creates a recipe summary with the given name in folderID
func (f *RecipeFactory) Summary(name, folderID string) recipe.Summary {
	return recipe.Summary{
		Name:              name,
		FolderID:          folderID,
		IngredientsCount:  f.faker.Number(2, 8),
		InstructionsCount: f.faker.Number(2, 5),
	}
}

// GroceryList creates a grocery list with the given number of items
func (f *RecipeFactory) GroceryList(itemCount int) grocery.List {
	items := make([]string, itemCount)
	for i := range items {
		items[i] = fmt.Sprintf("%d cups %s", i+1, f.faker.Vegetable())
	}
	return grocery.List{
		ID:       uuid.New().String(),
		Items:    items,
		MealPlan: []string{f.faker.Dinner(), f.faker.Dinner()},
		DateRange: grocery.DateRange{
			Start: "2026-01-05",
			End:   "2026-01-11",
			Days:  7,
		},
	}
}
