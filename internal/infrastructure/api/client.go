// Package api implements the outbound backend port over JSON/HTTP. The
// backend owns extraction, aggregation and storage; this client owns nothing
// but the wire contract. No call is retried: a network failure is terminal
// for that operation and the user repeats the action to retry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mealmate/v2/internal/domain/grocery"
	"github.com/mealmate/v2/internal/domain/recipe"
	"github.com/mealmate/v2/internal/infrastructure/config"
	"github.com/mealmate/v2/internal/ports/outbound"
	"github.com/mealmate/v2/pkg/errors"
	"go.uber.org/zap"
)

// Client talks to the recipe backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a backend API client. Redirects are not followed: an
// authentication redirect must surface as its original status so the sync
// layer can treat it as "nothing to show".
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.Backend.URL,
		httpClient: &http.Client{
			Timeout: cfg.Backend.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger.Named("backend-client"),
	}
}

var _ outbound.Backend = (*Client)(nil)

// ListFolders fetches all folders with recipe counts
func (c *Client) ListFolders(ctx context.Context) ([]recipe.Folder, error) {
	var folders []recipe.Folder
	if err := c.get(ctx, "/api/folders", "loading folders", &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// CreateFolder creates a folder
func (c *Client) CreateFolder(ctx context.Context, name string) (recipe.Folder, error) {
	var resp struct {
		Success bool          `json:"success"`
		Folder  recipe.Folder `json:"folder"`
	}
	body := map[string]string{"name": name}
	if err := c.post(ctx, "/api/folders", "creating folder", body, &resp); err != nil {
		return recipe.Folder{}, err
	}
	return resp.Folder, nil
}

// RenameFolder renames a folder; the backend rejects the protected one
func (c *Client) RenameFolder(ctx context.Context, id, name string) error {
	body := map[string]string{"name": name}
	return c.put(ctx, "/api/folders/"+url.PathEscape(id), "renaming folder", body, nil)
}

// DeleteFolder deletes a folder; its recipes move to uncategorized
func (c *Client) DeleteFolder(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/folders/"+url.PathEscape(id), "deleting folder", nil)
}

// ListRecipes fetches all saved recipe summaries across folders
func (c *Client) ListRecipes(ctx context.Context) ([]recipe.Summary, error) {
	var recipes []recipe.Summary
	if err := c.get(ctx, "/api/recipes", "loading recipes", &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListFolderRecipes fetches the recipe summaries of one folder
func (c *Client) ListFolderRecipes(ctx context.Context, folderID string) ([]recipe.Summary, error) {
	var recipes []recipe.Summary
	path := "/api/folders/" + url.PathEscape(folderID) + "/recipes"
	if err := c.get(ctx, path, "loading folder recipes", &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe fetches a full recipe by folder and name
func (c *Client) GetRecipe(ctx context.Context, folderID, name string) (recipe.Recipe, error) {
	var r recipe.Recipe
	path := "/api/recipe/" + url.PathEscape(folderID) + "/" + url.PathEscape(name)
	if err := c.get(ctx, path, "loading recipe details", &r); err != nil {
		return recipe.Recipe{}, err
	}
	return r, nil
}

// SaveManualRecipe saves a user-entered recipe
func (c *Client) SaveManualRecipe(ctx context.Context, r recipe.Recipe) error {
	body := map[string]interface{}{
		"name":         r.Name,
		"serving_size": r.ServingSize,
		"ingredients":  r.Ingredients,
		"instructions": r.Instructions,
		"folder_id":    r.FolderID,
	}
	return c.post(ctx, "/api/save-manual-recipe", "saving recipe", body, nil)
}

// ExtractRecipe extracts a recipe from a web page and saves it
func (c *Client) ExtractRecipe(ctx context.Context, pageURL, folderID string) (recipe.Recipe, error) {
	var resp struct {
		Success bool          `json:"success"`
		Message string        `json:"message"`
		Recipe  recipe.Recipe `json:"recipe"`
	}
	body := map[string]string{"url": pageURL, "folder_id": folderID}
	if err := c.post(ctx, "/api/extract-recipe", "extracting recipe", body, &resp); err != nil {
		return recipe.Recipe{}, err
	}
	resp.Recipe.FolderID = folderID
	return resp.Recipe, nil
}

// SaveSearchResult saves a recipe found through web search
func (c *Client) SaveSearchResult(ctx context.Context, r recipe.Recipe, folderID string) error {
	body := map[string]interface{}{"recipe": r, "folder_id": folderID}
	return c.post(ctx, "/api/save-search-result", "saving recipe", body, nil)
}

// MoveRecipe moves a recipe between folders
func (c *Client) MoveRecipe(ctx context.Context, name, fromFolder, toFolder string) error {
	body := map[string]string{
		"recipe_name":    name,
		"current_folder": fromFolder,
		"target_folder":  toFolder,
	}
	return c.post(ctx, "/api/move-recipe", "moving recipe", body, nil)
}

// DeleteRecipe deletes a recipe from a folder
func (c *Client) DeleteRecipe(ctx context.Context, folderID, name string) error {
	path := "/api/delete-recipe/" + url.PathEscape(folderID) + "/" + url.PathEscape(name)
	return c.delete(ctx, path, "deleting recipe", nil)
}

// SearchWeb searches the web for candidate recipes
func (c *Client) SearchWeb(ctx context.Context, query string) ([]recipe.Recipe, error) {
	var resp struct {
		Recipes []recipe.Recipe `json:"recipes"`
	}
	body := map[string]string{"description": query, "search_type": "web"}
	if err := c.post(ctx, "/api/recipe-search", "searching for recipes", body, &resp); err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

// CreateMealPlan generates a grocery list from the selected recipes. The
// heavy lifting (ingredient parsing and consolidation) is backend-side; the
// client only waits for it.
func (c *Client) CreateMealPlan(ctx context.Context, recipeNames []string, startDate, endDate string) (grocery.List, error) {
	var resp struct {
		Success   bool              `json:"success"`
		MealPlan  []string          `json:"meal_plan"`
		Items     []string          `json:"grocery_list"`
		DateRange grocery.DateRange `json:"date_range"`
	}
	body := map[string]interface{}{
		"recipes":    recipeNames,
		"start_date": startDate,
		"end_date":   endDate,
	}
	if err := c.post(ctx, "/api/create-meal-plan", "generating meal plan", body, &resp); err != nil {
		return grocery.List{}, err
	}
	return grocery.List{
		Items:     resp.Items,
		MealPlan:  resp.MealPlan,
		DateRange: resp.DateRange,
	}, nil
}

// SaveGroceryList saves a grocery list and returns its assigned id
func (c *Client) SaveGroceryList(ctx context.Context, list grocery.List) (string, error) {
	var resp struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	body := map[string]interface{}{
		"groceryList": list.Items,
		"mealPlan":    list.MealPlan,
		"dateRange":   list.DateRange,
	}
	if err := c.post(ctx, "/api/grocery-lists", "saving grocery list", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// ListGroceryLists fetches all saved grocery lists
func (c *Client) ListGroceryLists(ctx context.Context) ([]grocery.List, error) {
	var lists []grocery.List
	if err := c.get(ctx, "/api/grocery-lists", "loading saved grocery lists", &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// GetGroceryList fetches one saved grocery list by id
func (c *Client) GetGroceryList(ctx context.Context, id string) (grocery.List, error) {
	var list grocery.List
	if err := c.get(ctx, "/api/grocery-lists/"+url.PathEscape(id), "loading grocery list", &list); err != nil {
		return grocery.List{}, err
	}
	return list, nil
}

// DeleteGroceryList deletes a saved grocery list by id
func (c *Client) DeleteGroceryList(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/grocery-lists/"+url.PathEscape(id), "deleting grocery list", nil)
}

// Helper methods

func (c *Client) get(ctx context.Context, path, action string, response interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, action, response)
}

func (c *Client) post(ctx context.Context, path, action string, body, response interface{}) error {
	return c.send(ctx, http.MethodPost, path, action, body, response)
}

func (c *Client) put(ctx context.Context, path, action string, body, response interface{}) error {
	return c.send(ctx, http.MethodPut, path, action, body, response)
}

func (c *Client) delete(ctx context.Context, path, action string, response interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, action, response)
}

func (c *Client) send(ctx context.Context, method, path, action string, body, response interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, action, response)
}

func (c *Client) do(req *http.Request, action string, response interface{}) error {
	c.logger.Debug("backend request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewBackendError(action, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewBackendError(action, "", err)
	}

	// An authentication redirect or a 401 means there is nothing to show,
	// not that something failed. The backend only ever redirects to its
	// login page, so any redirect status counts.
	if resp.StatusCode == http.StatusUnauthorized ||
		(resp.StatusCode >= 300 && resp.StatusCode < 400) {
		return errors.NewUnauthenticatedError()
	}

	if resp.StatusCode >= 400 {
		c.logger.Debug("backend error response",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &payload)
		serverText := payload.Error
		if serverText == "" {
			serverText = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return errors.NewBackendError(action, serverText, nil)
	}

	if response == nil {
		return nil
	}
	if err := json.Unmarshal(body, response); err != nil {
		return errors.NewBackendError(action, "", err)
	}
	return nil
}
