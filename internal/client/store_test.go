package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileStore(path)

	// Missing file reads as no session, not an error.
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("tok123"))

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_Clear(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))

	require.NoError(t, store.Save("tok123"))
	require.NoError(t, store.Clear())

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing an already-empty store is a no-op.
	require.NoError(t, store.Clear())
}
