// Package recipe contains the core domain types for recipe and folder
// management. The backend owns persistence; these types mirror the JSON
// shapes it serves and carry the client-side business rules.
package recipe

import "strings"

// UncategorizedFolderID identifies the protected default folder. It always
// exists, cannot be renamed and cannot be deleted; deleting another folder
// reassigns its recipes here.
const UncategorizedFolderID = "uncategorized"

// Folder is a user-defined grouping of recipes
type Folder struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RecipeCount int    `json:"recipe_count"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Protected reports whether the folder is the non-deletable default
func (f Folder) Protected() bool {
	return f.ID == UncategorizedFolderID
}

// Summary is the lightweight recipe listing shape served by the backend.
// Recipe names are unique within a folder.
type Summary struct {
	Name              string `json:"name"`
	FolderID          string `json:"folder_id"`
	FolderName        string `json:"folder_name,omitempty"`
	ServingSize       string `json:"serving_size,omitempty"`
	IngredientsCount  int    `json:"ingredients_count"`
	InstructionsCount int    `json:"instructions_count"`
}

// Recipe is the full recipe shape: ordered ingredient and instruction lines
type Recipe struct {
	Name         string   `json:"name"`
	FolderID     string   `json:"folder_id,omitempty"`
	ServingSize  string   `json:"serving_size,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Summary derives the listing shape from a full recipe
func (r Recipe) Summary() Summary {
	return Summary{
		Name:              r.Name,
		FolderID:          r.FolderID,
		ServingSize:       r.ServingSize,
		IngredientsCount:  len(r.Ingredients),
		InstructionsCount: len(r.Instructions),
	}
}

// Validate checks the fields a user must supply before any network call
func (r Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrRecipeNameRequired
	}
	if len(r.Ingredients) == 0 {
		return ErrNoIngredients
	}
	if len(r.Instructions) == 0 {
		return ErrNoInstructions
	}
	return nil
}

// ValidateFolderName checks a user-entered folder name
func ValidateFolderName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrFolderNameRequired
	}
	return nil
}
