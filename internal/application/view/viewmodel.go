// Package view builds view models from application state. Every builder is
// a pure function of its inputs so the presentation layer stays trivially
// unit-testable; nothing here touches the network or any shared state.
package view

import (
	"fmt"

	"github.com/mealmate/v2/internal/application/state"
	"github.com/mealmate/v2/internal/domain/grocery"
	"github.com/mealmate/v2/internal/domain/recipe"
	"github.com/mealmate/v2/internal/domain/search"
)

// FolderCard is one tile of the folder grid
type FolderCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RecipeCount int    `json:"recipe_count"`
	Protected   bool   `json:"protected"`
}

// RecipeCard is one tile of the recipe grid
type RecipeCard struct {
	Name              string `json:"name"`
	FolderID          string `json:"folder_id"`
	FolderName        string `json:"folder_name"`
	ServingSize       string `json:"serving_size,omitempty"`
	IngredientsCount  int    `json:"ingredients_count"`
	InstructionsCount int    `json:"instructions_count"`
}

// Dashboard is the main page view
type Dashboard struct {
	Folders      []FolderCard   `json:"folders"`
	Recipes      []RecipeCard   `json:"recipes"`
	EmptyFolders bool           `json:"empty_folders"`
	EmptyRecipes bool           `json:"empty_recipes"`
	Notices      []state.Notice `json:"notices"`
}

// BuildDashboard renders the folder and recipe grids from a cache snapshot
func BuildDashboard(snap state.Snapshot, notices []state.Notice) Dashboard {
	d := Dashboard{
		Folders:      make([]FolderCard, 0, len(snap.Folders)),
		Recipes:      make([]RecipeCard, 0, len(snap.Recipes)),
		EmptyFolders: len(snap.Folders) == 0,
		EmptyRecipes: len(snap.Recipes) == 0,
		Notices:      notices,
	}
	for _, f := range snap.Folders {
		d.Folders = append(d.Folders, FolderCard{
			ID:          f.ID,
			Name:        f.Name,
			RecipeCount: f.RecipeCount,
			Protected:   f.Protected(),
		})
	}
	for _, r := range snap.Recipes {
		folderName := r.FolderName
		if folderName == "" {
			folderName = "Uncategorized"
		}
		d.Recipes = append(d.Recipes, RecipeCard{
			Name:              r.Name,
			FolderID:          r.FolderID,
			FolderName:        folderName,
			ServingSize:       r.ServingSize,
			IngredientsCount:  r.IngredientsCount,
			InstructionsCount: r.InstructionsCount,
		})
	}
	return d
}

// FolderOption is one entry of a folder select
type FolderOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderOptions are the folder choices offered by the various dialogs.
// Rename and delete exclude the protected uncategorized folder; saves
// default to it.
type FolderOptions struct {
	All       []FolderOption `json:"all"`
	Mutable   []FolderOption `json:"mutable"`
	DefaultID string         `json:"default_id"`
}

// BuildFolderOptions renders the folder selects from a cache snapshot
func BuildFolderOptions(snap state.Snapshot) FolderOptions {
	opts := FolderOptions{DefaultID: recipe.UncategorizedFolderID}
	for _, f := range snap.Folders {
		opt := FolderOption{ID: f.ID, Name: f.Name}
		opts.All = append(opts.All, opt)
		if !f.Protected() {
			opts.Mutable = append(opts.Mutable, opt)
		}
	}
	return opts
}

// SearchResult is one row of the search results panel
type SearchResult struct {
	Name              string `json:"name"`
	FolderID          string `json:"folder_id,omitempty"`
	ServingSize       string `json:"serving_size,omitempty"`
	IngredientsCount  int    `json:"ingredients_count"`
	InstructionsCount int    `json:"instructions_count"`
	Score             int    `json:"score,omitempty"`
}

// SearchView is the search results panel. EmptyMessage and EmptyHint are
// only set when Results is empty; the hint distinguishes "no saved recipes
// at all" from "nothing matched".
type SearchView struct {
	Query        string         `json:"query"`
	Mode         string         `json:"mode"`
	Results      []SearchResult `json:"results"`
	EmptyMessage string         `json:"empty_message,omitempty"`
	EmptyHint    string         `json:"empty_hint,omitempty"`
}

// Search modes
const (
	SearchModeSaved = "saved"
	SearchModeWeb   = "web"
)

// BuildSavedSearchView renders a similarity search outcome
func BuildSavedSearchView(query string, matches []search.Match, haveSavedRecipes bool) SearchView {
	v := SearchView{Query: query, Mode: SearchModeSaved}
	for _, m := range matches {
		v.Results = append(v.Results, SearchResult{
			Name:              m.Recipe.Name,
			FolderID:          m.Recipe.FolderID,
			ServingSize:       m.Recipe.ServingSize,
			IngredientsCount:  m.Recipe.IngredientsCount,
			InstructionsCount: m.Recipe.InstructionsCount,
			Score:             m.Score,
		})
	}
	if len(v.Results) == 0 {
		v.EmptyMessage = fmt.Sprintf("No saved recipes found for %q", query)
		if !haveSavedRecipes {
			v.EmptyHint = "Try switching to \"Discover New Recipes\" to find recipes online"
		}
	}
	return v
}

// BuildWebSearchView renders a web search outcome
func BuildWebSearchView(query string, results []recipe.Recipe) SearchView {
	v := SearchView{Query: query, Mode: SearchModeWeb}
	for _, r := range results {
		v.Results = append(v.Results, SearchResult{
			Name:              r.Name,
			ServingSize:       r.ServingSize,
			IngredientsCount:  len(r.Ingredients),
			InstructionsCount: len(r.Instructions),
		})
	}
	if len(v.Results) == 0 {
		v.EmptyMessage = fmt.Sprintf("No recipes found for %q", query)
	}
	return v
}

// GroceryItem is one line of the grocery checklist
type GroceryItem struct {
	Index   int    `json:"index"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// GroceryView is the grocery list display: the planning period, the plan's
// recipes and the checklist itself.
type GroceryView struct {
	DateRange  grocery.DateRange `json:"date_range"`
	MealPlan   []string          `json:"meal_plan"`
	Items      []GroceryItem     `json:"items"`
	Remaining  int               `json:"remaining"`
	AllChecked bool              `json:"all_checked"`
	Empty      bool              `json:"empty"`
}

// BuildGroceryView renders a grocery list with its checklist state
func BuildGroceryView(list grocery.List, checked map[int]bool) GroceryView {
	v := GroceryView{
		DateRange: list.DateRange,
		MealPlan:  append([]string(nil), list.MealPlan...),
		Items:     make([]GroceryItem, 0, len(list.Items)),
		Empty:     len(list.Items) == 0,
	}
	for i, text := range list.Items {
		item := GroceryItem{Index: i, Text: text, Checked: checked[i]}
		if !item.Checked {
			v.Remaining++
		}
		v.Items = append(v.Items, item)
	}
	v.AllChecked = !v.Empty && v.Remaining == 0
	return v
}
