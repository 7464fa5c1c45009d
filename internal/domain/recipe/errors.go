package recipe

import "errors"

// Domain validation errors
var (
	ErrRecipeNameRequired = errors.New("recipe name is required")
	ErrNoIngredients      = errors.New("at least one ingredient is required")
	ErrNoInstructions     = errors.New("at least one instruction is required")
	ErrFolderNameRequired = errors.New("folder name is required")
)
