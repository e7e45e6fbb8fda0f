package kvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/coursetrack/internal/kvstore"
	"github.com/rpggio/coursetrack/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	_, err := store.Get(ctx, "courseStatus")
	require.ErrorIs(t, err, repository.ErrNotFound)

	value := []byte("one")
	require.NoError(t, store.Set(ctx, "courseStatus", value))
	value[0] = 'X'

	got, err := store.Get(ctx, "courseStatus")
	require.NoError(t, err)
	require.Equal(t, "one", string(got), "stored value must not alias caller memory")

	require.ErrorIs(t, store.Set(ctx, "", []byte("x")), repository.ErrInvalidInput)
}

func TestFileStore_SetGet(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "state")

	store, err := kvstore.NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.Get(ctx, "courseStatus")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Set(ctx, "courseStatus", []byte(`{"a":[]}`)))
	require.NoError(t, store.Set(ctx, "courseStatus", []byte(`{"b":[]}`)))

	got, err := store.Get(ctx, "courseStatus")
	require.NoError(t, err)
	require.Equal(t, `{"b":[]}`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	require.Equal(t, "courseStatus.json", entries[0].Name())
}

func TestFileStore_Persists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := kvstore.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "courseStatus", []byte("saved")))

	second, err := kvstore.NewFileStore(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, "courseStatus")
	require.NoError(t, err)
	require.Equal(t, "saved", string(got))
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	ctx := context.Background()
	store, err := kvstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", ".."} {
		require.ErrorIs(t, store.Set(ctx, key, []byte("x")), repository.ErrInvalidInput, key)
		_, err := store.Get(ctx, key)
		require.ErrorIs(t, err, repository.ErrInvalidInput, key)
	}
}
