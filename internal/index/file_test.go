package index

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreEmptyBeforeFirstPut(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "index.json"))
	entries, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStorePreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "index.json"))

	require.NoError(t, store.Put(ctx, "alpha", "a.pdf"))
	require.NoError(t, store.Put(ctx, "bravo", "b.pdf"))
	require.NoError(t, store.Put(ctx, "charlie", "c.pdf"))

	entries, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha", entries[0].Key)
	assert.Equal(t, "bravo", entries[1].Key)
	assert.Equal(t, "charlie", entries[2].Key)
}

func TestFileStorePutReplacesExistingKeyInPlace(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "index.json"))

	require.NoError(t, store.Put(ctx, "alpha", "old.pdf"))
	require.NoError(t, store.Put(ctx, "bravo", "b.pdf"))
	require.NoError(t, store.Put(ctx, "alpha", "new.pdf"))

	entries, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Key: "alpha", DocumentID: "new.pdf"}, entries[0])
	assert.Equal(t, Entry{Key: "bravo", DocumentID: "b.pdf"}, entries[1])
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.json")

	require.NoError(t, NewFileStore(path).Put(ctx, "alpha", "a.pdf"))

	entries, err := NewFileStore(path).Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.pdf", entries[0].DocumentID)
}
