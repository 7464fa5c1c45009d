package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mealmate/v2/internal/domain/grocery"
	"github.com/mealmate/v2/internal/domain/recipe"
	"github.com/mealmate/v2/internal/infrastructure/config"
	"github.com/mealmate/v2/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Backend.URL = server.URL
	cfg.Backend.Timeout = 5 * time.Second
	return NewClient(cfg, zap.NewNop())
}

func TestListFolders(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/folders", r.URL.Path)
		json.NewEncoder(w).Encode([]recipe.Folder{
			{ID: recipe.UncategorizedFolderID, Name: "Uncategorized", RecipeCount: 3},
		})
	}))

	folders, err := client.ListFolders(context.Background())
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, 3, folders[0].RecipeCount)
}

func TestUnauthorizedMapsToUnauthenticated(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.ListFolders(context.Background())
	assert.True(t, errors.Is(err, errors.CodeUnauthenticated))
}

func TestAuthRedirectMapsToUnauthenticated(t *testing.T) {
	// A session-expired backend redirects to its login page; every redirect
	// flavor degrades the same way
	statuses := []int{
		http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect,
	}

	for _, status := range statuses {
		status := status
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Location", "/login")
			w.WriteHeader(status)
		}))

		_, err := client.ListRecipes(context.Background())
		assert.True(t, errors.Is(err, errors.CodeUnauthenticated), "status %d", status)
	}
}

func TestBackendErrorCarriesServerText(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "folder name already taken"})
	}))

	_, err := client.CreateFolder(context.Background(), "Dinners")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeBackendError))
	assert.Contains(t, errors.Wrap(err, "").UserMessage(), "folder name already taken")
}

func TestBackendErrorWithoutBodyFallsBackToStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.ListFolders(context.Background())
	require.Error(t, err)
	assert.Contains(t, errors.Wrap(err, "").UserMessage(), "HTTP 500")
}

func TestGetRecipeEscapesPathSegments(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipe/abc/Mac & Cheese", r.URL.Path)
		json.NewEncoder(w).Encode(recipe.Recipe{Name: "Mac & Cheese"})
	}))

	r, err := client.GetRecipe(context.Background(), "abc", "Mac & Cheese")
	require.NoError(t, err)
	assert.Equal(t, "Mac & Cheese", r.Name)
}

func TestMoveRecipePayload(t *testing.T) {
	var payload map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))

	err := client.MoveRecipe(context.Background(), "Chicken Soup", "uncategorized", "abc")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Soup", payload["recipe_name"])
	assert.Equal(t, "uncategorized", payload["current_folder"])
	assert.Equal(t, "abc", payload["target_folder"])
}

func TestCreateMealPlan(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2026-01-05", req["start_date"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":      true,
			"meal_plan":    []string{"Chicken Soup"},
			"grocery_list": []string{"2 carrots", "6 cups broth"},
			"date_range":   grocery.DateRange{Start: "2026-01-05", End: "2026-01-07", Days: 3},
		})
	}))

	list, err := client.CreateMealPlan(context.Background(), []string{"Chicken Soup"}, "2026-01-05", "2026-01-07")
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 3, list.DateRange.Days)
}

func TestSaveGroceryListPayloadUsesCamelCase(t *testing.T) {
	var payload map[string]json.RawMessage
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "id": "list-1"})
	}))

	id, err := client.SaveGroceryList(context.Background(), grocery.List{
		Items:    []string{"2 carrots"},
		MealPlan: []string{"Chicken Soup"},
	})
	require.NoError(t, err)
	assert.Equal(t, "list-1", id)
	assert.Contains(t, payload, "groceryList")
	assert.Contains(t, payload, "mealPlan")
	assert.Contains(t, payload, "dateRange")
}

func TestConnectionFailureIsBackendError(t *testing.T) {
	cfg := &config.Config{}
	cfg.Backend.URL = "http://127.0.0.1:1" // nothing listens here
	cfg.Backend.Timeout = 100 * time.Millisecond
	client := NewClient(cfg, zap.NewNop())

	_, err := client.ListFolders(context.Background())
	assert.True(t, errors.Is(err, errors.CodeBackendError))
}
