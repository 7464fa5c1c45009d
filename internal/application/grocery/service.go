package grocery

import (
	"context"
	"sync"

	"github.com/mealmate/v2/internal/application/state"
	"github.com/mealmate/v2/internal/domain/grocery"
	"github.com/mealmate/v2/internal/ports/inbound"
	"github.com/mealmate/v2/internal/ports/outbound"
	"github.com/mealmate/v2/pkg/errors"
	"go.uber.org/zap"
)

// Refresher re-fetches the folder and recipe caches; the recipe service
// satisfies this.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// Service implements the planner use cases
type Service struct {
	backend   outbound.Backend
	state     *state.AppState
	checklist *Checklist
	refresher Refresher
	logger    *zap.Logger

	mu      sync.Mutex
	current *grocery.List
}

// NewService creates a new planner service
func NewService(
	backend outbound.Backend,
	appState *state.AppState,
	checklist *Checklist,
	refresher Refresher,
	logger *zap.Logger,
) inbound.PlannerService {
	return &Service{
		backend:   backend,
		state:     appState,
		checklist: checklist,
		refresher: refresher,
		logger:    logger.Named("planner-service"),
	}
}

// PlanMeals validates the request, asks the backend to generate the grocery
// list, displays it (resetting the checklist) and auto-saves it. A failed
// auto-save degrades to an informational notice: the plan itself succeeded
// and the user can save manually.
func (s *Service) PlanMeals(ctx context.Context, cmd inbound.PlanCommand) (grocery.List, error) {
	if err := grocery.ValidatePlan(cmd.RecipeNames, cmd.StartDate, cmd.EndDate); err != nil {
		return grocery.List{}, errors.NewValidationError(err.Error())
	}

	list, err := s.backend.CreateMealPlan(ctx, cmd.RecipeNames, cmd.StartDate, cmd.EndDate)
	if err != nil {
		return grocery.List{}, err
	}

	s.display(list)

	if _, err := s.backend.SaveGroceryList(ctx, list); err != nil {
		s.logger.Warn("auto-save of grocery list failed", zap.Error(err))
		s.state.Notices().Push(state.NoticeInfo, "Meal plan generated! Click \"Save List\" to save for later viewing.")
	} else {
		s.state.Notices().Push(state.NoticeSuccess, "Meal plan generated and grocery list saved successfully!")
	}

	s.state.Bump()
	if err := s.refresher.RefreshAll(ctx); err != nil {
		s.logger.Warn("post-plan refresh failed", zap.Error(err))
	}

	return list, nil
}

// SavedLists fetches all saved grocery lists
func (s *Service) SavedLists(ctx context.Context) ([]grocery.List, error) {
	return s.backend.ListGroceryLists(ctx)
}

// ViewList fetches a saved list and displays it. The checklist resets even
// though the list was viewed before; see DESIGN.md.
func (s *Service) ViewList(ctx context.Context, id string) (grocery.List, error) {
	list, err := s.backend.GetGroceryList(ctx, id)
	if err != nil {
		return grocery.List{}, err
	}
	s.display(list)
	return list, nil
}

// DeleteList deletes a saved grocery list
func (s *Service) DeleteList(ctx context.Context, id string) error {
	if err := s.backend.DeleteGroceryList(ctx, id); err != nil {
		return err
	}
	s.state.Notices().Push(state.NoticeSuccess, "Grocery list deleted successfully!")
	return nil
}

// SaveCurrent saves the currently displayed grocery list
func (s *Service) SaveCurrent(ctx context.Context) error {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return errors.NewValidationError("No grocery list to save")
	}
	if _, err := s.backend.SaveGroceryList(ctx, *current); err != nil {
		return err
	}
	s.state.Notices().Push(state.NoticeSuccess, "Grocery list saved successfully!")
	return nil
}

// Current returns the list on display, if any
func (s *Service) Current() (grocery.List, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return grocery.List{}, false
	}
	return *s.current, true
}

// ToggleItem flips one checklist item
func (s *Service) ToggleItem(ctx context.Context, index int) (bool, error) {
	return s.checklist.Toggle(ctx, index)
}

// SetAllItems bulk-sets every checklist item
func (s *Service) SetAllItems(ctx context.Context, checked bool) error {
	return s.checklist.SetAll(ctx, checked)
}

// ChecklistState returns the current index-to-checked mapping
func (s *Service) ChecklistState() map[int]bool {
	return s.checklist.State()
}

// display makes list the current one and resets its checklist
func (s *Service) display(list grocery.List) {
	s.mu.Lock()
	s.current = &list
	s.mu.Unlock()
	s.checklist.Init(len(list.Items))
}
