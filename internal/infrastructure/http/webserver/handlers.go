package webserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mealmate/v2/internal/application/state"
	"github.com/mealmate/v2/internal/application/view"
	"github.com/mealmate/v2/internal/domain/recipe"
	"github.com/mealmate/v2/internal/ports/inbound"
	"github.com/mealmate/v2/pkg/errors"
)

// respondAppError renders an error response and, for anything except an
// unauthenticated session, pushes a transient danger notice. The process
// stays interactive after every failure.
func (s *WebServer) respondAppError(w http.ResponseWriter, err error) {
	appErr := errors.Wrap(err, "Something went wrong")
	if appErr.Code != errors.CodeUnauthenticated {
		s.appState.Notices().Push(state.NoticeDanger, appErr.UserMessage())
	}
	s.respond(w, appErr.StatusCode(), map[string]interface{}{"error": appErr})
}

func (s *WebServer) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondAppError(w, errors.NewValidationError("Invalid request payload"))
		return false
	}
	return true
}

func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// Views

func (s *WebServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap := s.appState.Snapshot()
	s.respond(w, http.StatusOK, view.BuildDashboard(snap, s.appState.Notices().Active()))
}

func (s *WebServer) handleFolderOptions(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, view.BuildFolderOptions(s.appState.Snapshot()))
}

func (s *WebServer) handleGroceryView(w http.ResponseWriter, r *http.Request) {
	list, ok := s.planner.Current()
	if !ok {
		s.respondAppError(w, errors.NewAppError(errors.CodeNotFound, "No grocery list to show", "Create a meal plan to generate your first grocery list!"))
		return
	}
	s.respond(w, http.StatusOK, view.BuildGroceryView(list, s.planner.ChecklistState()))
}

func (s *WebServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	mode := r.URL.Query().Get("mode")

	if mode == view.SearchModeWeb {
		results, err := s.recipes.SearchWeb(r.Context(), query)
		if err != nil {
			s.respondAppError(w, err)
			return
		}
		s.respond(w, http.StatusOK, view.BuildWebSearchView(query, results))
		return
	}

	result, err := s.recipes.SearchSaved(query)
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusOK, view.BuildSavedSearchView(result.Query, result.Matches, result.HaveSavedRecipes))
}

// Folders

func (s *WebServer) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.recipes.CreateFolder(r.Context(), req.Name); err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, view.BuildFolderOptions(s.appState.Snapshot()))
}

func (s *WebServer) handleRenameFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.recipes.RenameFolder(r.Context(), pathParam(r, "id"), req.Name); err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusOK, view.BuildFolderOptions(s.appState.Snapshot()))
}

func (s *WebServer) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := s.recipes.DeleteFolder(r.Context(), pathParam(r, "id")); err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusOK, view.BuildFolderOptions(s.appState.Snapshot()))
}

func (s *WebServer) handleFolderRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.recipes.FolderRecipes(r.Context(), pathParam(r, "id"))
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	if recipes == nil {
		recipes = []recipe.Summary{}
	}
	s.respond(w, http.StatusOK, recipes)
}

// Recipes

func (s *WebServer) handleRecipeDetails(w http.ResponseWriter, r *http.Request) {
	details, err := s.recipes.RecipeDetails(r.Context(), pathParam(r, "folderID"), pathParam(r, "name"))
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusOK, details)
}

func (s *WebServer) handleSaveManual(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.SaveManualCommand
	if !s.decode(w, r, &cmd) {
		return
	}
	if err := s.recipes.SaveManual(r.Context(), cmd); err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, nil)
}

func (s *WebServer) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL      string `json:"url"`
		FolderID string `json:"folder_id"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	extracted, err := s.recipes.ExtractFromURL(r.Context(), req.URL, req.FolderID)
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, extracted)
}

func (s *WebServer) handleSaveSearchResult(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Recipe   recipe.Recipe `json:"recipe"`
		FolderID string        `json:"folder_id"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.recipes.SaveSearchResult(r.Context(), req.Recipe, req.FolderID); err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, nil)
}

func (s *WebServer) handleMoveRecipe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RecipeName    string `json:"recipe_name"`
		CurrentFolder string `json:"current_folder"`
		TargetFolder  string `json:"target_folder"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.recipes.MoveRecipe(r.Context(), req.RecipeName, req.CurrentFolder, req.TargetFolder); err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusOK, nil)
}

func (s *WebServer) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := s.recipes.DeleteRecipe(r.Context(), pathParam(r, "folderID"), pathParam(r, "name")); err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusOK, nil)
}

// Meal plans and grocery lists

func (s *WebServer) handlePlanMeals(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.PlanCommand
	if !s.decode(w, r, &cmd) {
		return
	}
	list, err := s.planner.PlanMeals(r.Context(), cmd)
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, view.BuildGroceryView(list, s.planner.ChecklistState()))
}

func (s *WebServer) handleSavedLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.planner.SavedLists(r.Context())
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusOK, lists)
}

func (s *WebServer) handleViewList(w http.ResponseWriter, r *http.Request) {
	list, err := s.planner.ViewList(r.Context(), pathParam(r, "id"))
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusOK, view.BuildGroceryView(list, s.planner.ChecklistState()))
}

func (s *WebServer) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	if err := s.planner.DeleteList(r.Context(), pathParam(r, "id")); err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusOK, nil)
}

func (s *WebServer) handleSaveCurrent(w http.ResponseWriter, r *http.Request) {
	if err := s.planner.SaveCurrent(r.Context()); err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, nil)
}

// Checklist

func (s *WebServer) handleToggleItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.respondAppError(w, errors.NewValidationError("Invalid grocery item index"))
		return
	}
	checked, err := s.planner.ToggleItem(r.Context(), index)
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]interface{}{"index": index, "checked": checked})
}

func (s *WebServer) handleSetAllItems(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Checked bool `json:"checked"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.planner.SetAllItems(r.Context(), req.Checked); err != nil {
		s.respondAppError(w, err)
		return
	}
	list, ok := s.planner.Current()
	if !ok {
		s.respond(w, http.StatusOK, nil)
		return
	}
	s.respond(w, http.StatusOK, view.BuildGroceryView(list, s.planner.ChecklistState()))
}
