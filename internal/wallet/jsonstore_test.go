package wallet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vaultUser = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"

func walletsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "wallets.json")
}

// reopen simulates the next yieldcli invocation over the same files.
func reopen(path string, ks KeystoreBackend) *Manager {
	return NewManager(WithStore(NewJSONStore(path)), WithKeystore(ks))
}

func TestJSONStoreMissingFileIsEmpty(t *testing.T) {
	wallets, err := NewJSONStore(walletsPath(t)).Load()
	require.NoError(t, err)
	assert.Nil(t, wallets)
}

func TestJSONStoreCorruptFileSurfacesOnConnect(t *testing.T) {
	path := walletsPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not valid json"), 0o600))

	_, err := reopen(path, NewInMemoryKeystore()).Connect("alice")
	assert.Error(t, err)
}

func TestConnectedWalletSurvivesRestart(t *testing.T) {
	path := walletsPath(t)
	ks := NewInMemoryKeystore()

	mgr := reopen(path, ks)
	require.NoError(t, mgr.Add("viewer", &Wallet{Address: strings.ToLower(vaultUser)}))
	require.NoError(t, mgr.AddWithKey("alice", testPrivKeyHex))
	require.NoError(t, mgr.SetDefault("alice"))

	w, err := reopen(path, ks).Connect("")
	require.NoError(t, err)
	assert.Equal(t, "alice", w.Name)
	assert.True(t, w.CanSign())

	viewer, err := reopen(path, ks).Connect("viewer")
	require.NoError(t, err)
	assert.Equal(t, vaultUser, viewer.Address, "address is stored checksummed")
	assert.False(t, viewer.CanSign())
}

func TestJSONStoreHoldsOnlyKeyReferences(t *testing.T) {
	path := walletsPath(t)
	require.NoError(t, reopen(path, NewInMemoryKeystore()).AddWithKey("alice", testPrivKeyHex))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), KeyRef("alice"))
	assert.NotContains(t, strings.ToLower(string(raw)), testPrivKeyHex)

	info, err := os.Stat(path)
	require.NoError(t, err)
	if info.Mode().Perm() != 0 { // Unix only
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestRemovedWalletStaysGoneAfterRestart(t *testing.T) {
	path := walletsPath(t)
	ks := NewInMemoryKeystore()

	mgr := reopen(path, ks)
	require.NoError(t, mgr.AddWithKey("alice", testPrivKeyHex))
	require.NoError(t, mgr.Remove("alice"))

	_, err := reopen(path, ks).Connect("alice")
	assert.ErrorIs(t, err, ErrWalletNotFound)
	_, err = ks.Retrieve(KeyRef("alice"))
	assert.Error(t, err, "removing the wallet drops its key too")
}

func TestJSONStoreSavesSortedByName(t *testing.T) {
	path := walletsPath(t)
	mgr := reopen(path, NewInMemoryKeystore())
	for _, name := range []string{"zed", "alice", "mid"} {
		require.NoError(t, mgr.Add(name, &Wallet{Address: vaultUser}))
	}

	loaded, err := NewJSONStore(path).Load()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, []string{"alice", "mid", "zed"}, []string{loaded[0].Name, loaded[1].Name, loaded[2].Name})
}
