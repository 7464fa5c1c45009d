package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	return store
}

func TestLoadMissingKeyReturnsEmptyMapping(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Load(context.Background(), "groceryListState")
	require.NoError(t, err)
	assert.NotNil(t, state)
	assert.Empty(t, state)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := map[int]bool{0: true, 1: false, 2: true}
	require.NoError(t, store.Save(ctx, "groceryListState", saved))

	loaded, err := store.Load(ctx, "groceryListState")
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSaveOverwritesExistingKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "groceryListState", map[int]bool{0: true, 1: true}))
	require.NoError(t, store.Save(ctx, "groceryListState", map[int]bool{0: false}))

	loaded, err := store.Load(ctx, "groceryListState")
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{0: false}, loaded)
}

func TestKeysAreIndependent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", map[int]bool{0: true}))
	require.NoError(t, store.Save(ctx, "b", map[int]bool{0: false}))

	a, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.True(t, a[0])

	b, err := store.Load(ctx, "b")
	require.NoError(t, err)
	assert.False(t, b[0])
}
