package outbound

import "context"

// ChecklistStore is the durable local storage for grocery checklist state:
// a serialized item-index to checked-flag mapping held under a single key.
// It survives process restarts but is never shared with the backend.
type ChecklistStore interface {
	Save(ctx context.Context, key string, state map[int]bool) error
	Load(ctx context.Context, key string) (map[int]bool, error)
}
