// Package recipe provides the application layer for folder and recipe
// management. It implements the use cases defined in the inbound ports on
// top of the backend collaborator and the shared application state.
package recipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mealmate/v2/internal/application/state"
	"github.com/mealmate/v2/internal/domain/recipe"
	"github.com/mealmate/v2/internal/domain/search"
	"github.com/mealmate/v2/internal/ports/inbound"
	"github.com/mealmate/v2/internal/ports/outbound"
	"github.com/mealmate/v2/pkg/errors"
	"go.uber.org/zap"
)

// RefreshRecorder counts refresh outcomes; the monitoring metrics satisfy
// this.
type RefreshRecorder interface {
	ObserveRefresh(outcome string)
}

// Service implements the recipe use cases
type Service struct {
	backend  outbound.Backend
	state    *state.AppState
	validate *validator.Validate
	recorder RefreshRecorder
	logger   *zap.Logger
}

// NewService creates a new recipe service
func NewService(backend outbound.Backend, appState *state.AppState, recorder RefreshRecorder, logger *zap.Logger) inbound.RecipeService {
	return &Service{
		backend:  backend,
		state:    appState,
		validate: validator.New(),
		recorder: recorder,
		logger:   logger.Named("recipe-service"),
	}
}

// RefreshAll re-fetches the folder and recipe lists and installs them in the
// cache. It is idempotent and must complete before a mutating operation
// reports success. Fetch failures and unauthenticated sessions degrade
// silently to an empty data set; an absence of data is expected there, not
// exceptional. A refresh that raced a newer mutation is discarded.
func (s *Service) RefreshAll(ctx context.Context) error {
	version := s.state.Version()

	folders, err := s.backend.ListFolders(ctx)
	if err != nil {
		s.logDegraded("folders", err)
		folders = nil
	}

	recipes, err := s.backend.ListRecipes(ctx)
	if err != nil {
		s.logDegraded("recipes", err)
		recipes = nil
	}

	if s.state.Apply(version, folders, recipes) {
		s.recorder.ObserveRefresh("applied")
	} else {
		s.recorder.ObserveRefresh("discarded")
		s.logger.Debug("discarded stale refresh", zap.Uint64("snapshot_version", version))
	}
	return nil
}

func (s *Service) logDegraded(what string, err error) {
	if errors.Is(err, errors.CodeUnauthenticated) {
		s.logger.Debug("not authenticated, showing empty "+what, zap.Error(err))
		return
	}
	s.logger.Warn("failed to load "+what, zap.Error(err))
}

// Folders returns the cached folder list
func (s *Service) Folders() []recipe.Folder {
	return s.state.Snapshot().Folders
}

// Recipes returns the cached recipe list
func (s *Service) Recipes() []recipe.Summary {
	return s.state.Snapshot().Recipes
}

// CreateFolder creates a folder and refreshes the cache
func (s *Service) CreateFolder(ctx context.Context, name string) error {
	if err := recipe.ValidateFolderName(name); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if _, err := s.backend.CreateFolder(ctx, strings.TrimSpace(name)); err != nil {
		return err
	}

	s.afterMutation(ctx)
	s.state.Notices().Push(state.NoticeSuccess, fmt.Sprintf("Folder %q created successfully!", strings.TrimSpace(name)))
	return nil
}

// RenameFolder renames a folder. The uncategorized folder is protected and
// the rename is rejected before any network call.
func (s *Service) RenameFolder(ctx context.Context, id, name string) error {
	if id == recipe.UncategorizedFolderID {
		return errors.NewProtectedFolderError(id)
	}
	if err := recipe.ValidateFolderName(name); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := s.backend.RenameFolder(ctx, id, strings.TrimSpace(name)); err != nil {
		return err
	}

	s.afterMutation(ctx)
	s.state.Notices().Push(state.NoticeSuccess, "Folder renamed successfully!")
	return nil
}

// DeleteFolder deletes a folder; the backend reassigns its recipes to the
// uncategorized folder. Deleting the uncategorized folder itself is rejected.
func (s *Service) DeleteFolder(ctx context.Context, id string) error {
	if id == recipe.UncategorizedFolderID {
		return errors.NewProtectedFolderError(id)
	}

	if err := s.backend.DeleteFolder(ctx, id); err != nil {
		return err
	}

	s.afterMutation(ctx)
	s.state.Notices().Push(state.NoticeSuccess, "Folder deleted. Its recipes moved to Uncategorized.")
	return nil
}

// FolderRecipes lists the recipes of one folder straight from the backend
func (s *Service) FolderRecipes(ctx context.Context, folderID string) ([]recipe.Summary, error) {
	return s.backend.ListFolderRecipes(ctx, folderID)
}

// RecipeDetails fetches a full recipe by folder and name
func (s *Service) RecipeDetails(ctx context.Context, folderID, name string) (recipe.Recipe, error) {
	return s.backend.GetRecipe(ctx, folderID, name)
}

// SaveManual validates and saves a user-entered recipe
func (s *Service) SaveManual(ctx context.Context, cmd inbound.SaveManualCommand) error {
	if err := s.validate.Struct(cmd); err != nil {
		return errors.NewValidationError("Please fill in the recipe name and at least one ingredient and instruction")
	}
	if cmd.FolderID == "" {
		cmd.FolderID = recipe.UncategorizedFolderID
	}

	r := recipe.Recipe{
		Name:         strings.TrimSpace(cmd.Name),
		FolderID:     cmd.FolderID,
		ServingSize:  strings.TrimSpace(cmd.ServingSize),
		Ingredients:  cmd.Ingredients,
		Instructions: cmd.Instructions,
	}
	if err := r.Validate(); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := s.backend.SaveManualRecipe(ctx, r); err != nil {
		return err
	}

	s.afterMutation(ctx)
	s.state.Notices().Push(state.NoticeSuccess, fmt.Sprintf("Recipe %q saved successfully!", r.Name))
	return nil
}

// ExtractFromURL asks the backend to extract a recipe from a web page and
// save it into folderID. Extraction itself is entirely backend-side.
func (s *Service) ExtractFromURL(ctx context.Context, url, folderID string) (recipe.Recipe, error) {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return recipe.Recipe{}, errors.NewValidationError("Please enter a valid URL starting with http:// or https://")
	}
	if folderID == "" {
		folderID = recipe.UncategorizedFolderID
	}

	extracted, err := s.backend.ExtractRecipe(ctx, url, folderID)
	if err != nil {
		return recipe.Recipe{}, err
	}

	s.afterMutation(ctx)
	s.state.Notices().Push(state.NoticeSuccess, fmt.Sprintf("Recipe %q extracted and saved!", extracted.Name))
	return extracted, nil
}

// SaveSearchResult saves a recipe found through web search into folderID
func (s *Service) SaveSearchResult(ctx context.Context, r recipe.Recipe, folderID string) error {
	if err := r.Validate(); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if folderID == "" {
		folderID = recipe.UncategorizedFolderID
	}

	if err := s.backend.SaveSearchResult(ctx, r, folderID); err != nil {
		return err
	}

	s.afterMutation(ctx)
	s.state.Notices().Push(state.NoticeSuccess, fmt.Sprintf("Recipe %q saved successfully!", r.Name))
	return nil
}

// MoveRecipe moves a recipe between folders
func (s *Service) MoveRecipe(ctx context.Context, name, fromFolder, toFolder string) error {
	if name == "" || fromFolder == "" || toFolder == "" {
		return errors.NewValidationError("Recipe name, current folder and target folder are required")
	}
	if fromFolder == toFolder {
		return errors.NewValidationError("The recipe is already in that folder")
	}

	if err := s.backend.MoveRecipe(ctx, name, fromFolder, toFolder); err != nil {
		return err
	}

	s.afterMutation(ctx)
	s.state.Notices().Push(state.NoticeSuccess, fmt.Sprintf("Recipe %q moved successfully!", name))
	return nil
}

// DeleteRecipe deletes a recipe from a folder
func (s *Service) DeleteRecipe(ctx context.Context, folderID, name string) error {
	if err := s.backend.DeleteRecipe(ctx, folderID, name); err != nil {
		return err
	}

	s.afterMutation(ctx)
	s.state.Notices().Push(state.NoticeSuccess, fmt.Sprintf("Recipe %q deleted successfully!", name))
	return nil
}

// SearchSaved runs the similarity engine over the cached saved recipes.
// Scores are recomputed on every call, never cached across queries.
func (s *Service) SearchSaved(query string) (inbound.SavedSearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return inbound.SavedSearchResult{}, errors.NewValidationError("Please enter a search query")
	}

	recipes := s.state.Snapshot().Recipes
	return inbound.SavedSearchResult{
		Query:            query,
		Matches:          search.Rank(query, recipes),
		HaveSavedRecipes: len(recipes) > 0,
	}, nil
}

// SearchWeb searches the web for recipes through the backend
func (s *Service) SearchWeb(ctx context.Context, query string) ([]recipe.Recipe, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.NewValidationError("Please enter a search query")
	}
	return s.backend.SearchWeb(ctx, query)
}

// afterMutation bumps the version counter and awaits a full refresh so no
// view shows data older than the mutation the user just made.
func (s *Service) afterMutation(ctx context.Context) {
	s.state.Bump()
	if err := s.RefreshAll(ctx); err != nil {
		s.logger.Warn("post-mutation refresh failed", zap.Error(err))
	}
}
