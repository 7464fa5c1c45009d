// Package grocery provides the application layer for meal planning, saved
// grocery lists and the per-item checklist state of the list on display.
package grocery

import (
	"context"
	"sync"

	"github.com/mealmate/v2/internal/ports/outbound"
	"github.com/mealmate/v2/pkg/errors"
	"go.uber.org/zap"
)

// StorageKey is the single fixed key the checklist state persists under.
// State is keyed by item position, not item content, and is not scoped per
// list. Regenerating a list with different items therefore reuses stale
// positional keys; see DESIGN.md for why this limitation is kept.
const StorageKey = "groceryListState"

// Checklist tracks the checked/unchecked state of each line item of the
// currently displayed grocery list. It is pure client-side UX state and
// never round-trips through the backend. Each item holds one of two states,
// flipped only by an explicit toggle or a bulk set, and lives until the next
// displayed list replaces it.
type Checklist struct {
	mu     sync.Mutex
	items  map[int]bool
	store  outbound.ChecklistStore
	logger *zap.Logger
}

// NewChecklist creates a checklist backed by the given durable store
func NewChecklist(store outbound.ChecklistStore, logger *zap.Logger) *Checklist {
	return &Checklist{
		items:  map[int]bool{},
		store:  store,
		logger: logger.Named("checklist"),
	}
}

// Init replaces any prior state with itemCount unchecked items. Displaying a
// grocery list always starts from a clean slate, whether the list is a new
// plan or a re-viewed saved one.
func (c *Checklist) Init(itemCount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[int]bool, itemCount)
	for i := 0; i < itemCount; i++ {
		c.items[i] = false
	}
}

// Restore loads the state persisted under the fixed key, typically once at
// startup. A missing key restores to an empty mapping.
func (c *Checklist) Restore(ctx context.Context) error {
	state, err := c.store.Load(ctx, StorageKey)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items = state
	c.mu.Unlock()
	return nil
}

// Toggle flips the state of one item and persists the entire mapping.
// Toggling twice returns the item to its original state.
func (c *Checklist) Toggle(ctx context.Context, index int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.items[index]
	if !ok {
		return false, errors.NewValidationError("No such grocery item")
	}
	c.items[index] = !current
	c.persistLocked(ctx)
	return !current, nil
}

// SetAll sets every item to checked and persists the entire mapping
func (c *Checklist) SetAll(ctx context.Context, checked bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		c.items[i] = checked
	}
	c.persistLocked(ctx)
	return nil
}

// State returns a copy of the index-to-checked mapping
func (c *Checklist) State() map[int]bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[int]bool, len(c.items))
	for i, checked := range c.items {
		out[i] = checked
	}
	return out
}

// persistLocked writes the whole mapping under the fixed key. A write
// failure only loses persistence across restarts, so it degrades to a log
// line rather than failing the toggle.
func (c *Checklist) persistLocked(ctx context.Context) {
	if err := c.store.Save(ctx, StorageKey, c.items); err != nil {
		c.logger.Warn("failed to persist checklist state", zap.Error(err))
	}
}
