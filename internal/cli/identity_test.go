package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileIdentityStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "identity.json")
	store := NewFileIdentityStore(path)

	identity := Identity{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, store.Save(identity))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, identity, *loaded)
}

func TestFileIdentityStoreLoadWithoutLogin(t *testing.T) {
	store := NewFileIdentityStore(filepath.Join(t.TempDir(), "identity.json"))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestFileIdentityStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")
	store := NewFileIdentityStore(path)

	require.NoError(t, store.Save(Identity{Email: "alice@example.com"}))
	require.NoError(t, store.Clear())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileIdentityStoreClearWhenNotLoggedIn(t *testing.T) {
	store := NewFileIdentityStore(filepath.Join(t.TempDir(), "identity.json"))
	assert.NoError(t, store.Clear())
}

func TestIdentityDisplayName(t *testing.T) {
	assert.Equal(t, "alice", Identity{Username: "alice", Email: "alice@example.com"}.DisplayName())
	assert.Equal(t, "alice@example.com", Identity{Email: "alice@example.com"}.DisplayName())
}
