// Package state owns the client-side application state: the read-through
// cache of folders and recipes, the monotonic version counter that orders
// refreshes against mutations, and the transient user notices. All views
// render from this one object; there are no ambient globals.
package state

import (
	"sync"

	"github.com/mealmate/v2/internal/domain/recipe"
)

// Snapshot is an immutable view of the cached data at a point in time
type Snapshot struct {
	Folders []recipe.Folder
	Recipes []recipe.Summary
	Version uint64
}

// AppState holds the shared mutable client state behind a single lock.
// Mutating operations bump the version before refetching; a refresh that
// started before the bump carries a stale version and is discarded on apply.
type AppState struct {
	mu      sync.RWMutex
	folders []recipe.Folder
	recipes []recipe.Summary
	version uint64

	notices *NoticeBoard
}

// New creates an empty application state
func New() *AppState {
	return &AppState{notices: NewNoticeBoard()}
}

// Snapshot returns a copy of the current cache contents
func (s *AppState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Folders: append([]recipe.Folder(nil), s.folders...),
		Recipes: append([]recipe.Summary(nil), s.recipes...),
		Version: s.version,
	}
}

// Version returns the current mutation counter
func (s *AppState) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Bump increments the mutation counter and returns the new value. Every
// mutating operation calls this before it refetches.
func (s *AppState) Bump() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	return s.version
}

// Apply installs refreshed data fetched at snapshotVersion. It returns false
// and leaves the cache untouched when a mutation has bumped the counter past
// snapshotVersion since the fetch began.
func (s *AppState) Apply(snapshotVersion uint64, folders []recipe.Folder, recipes []recipe.Summary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshotVersion < s.version {
		return false
	}
	s.folders = folders
	s.recipes = recipes
	return true
}

// Notices returns the notice board
func (s *AppState) Notices() *NoticeBoard {
	return s.notices
}
