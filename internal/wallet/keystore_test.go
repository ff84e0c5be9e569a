package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// normaliseHexKey
// ---------------------------------------------------------------------------

func TestNormaliseHexKey(t *testing.T) {
	cases := map[string]string{
		"0xabc123":  "abc123",
		"0Xabc123":  "abc123",
		"abc123":    "abc123",
		"  0xabc  ": "abc",
		"0x":        "",
		"":          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normaliseHexKey(in), "input %q", in)
	}
}

func TestKeyRef(t *testing.T) {
	assert.Equal(t, "yieldcli.alice", KeyRef("alice"))
}

// ---------------------------------------------------------------------------
// Keystore.Retrieve
// ---------------------------------------------------------------------------

func TestKeystoreRetrieveEnvVarOverride(t *testing.T) {
	t.Setenv(KeyEnv, "0x"+testPrivKeyHex)

	ks := &Keystore{}
	got, err := ks.Retrieve("yieldcli.any-ref")
	require.NoError(t, err)
	assert.Equal(t, testPrivKeyHex, got)
}

func TestKeystoreRetrieveFromSessionFile(t *testing.T) {
	t.Setenv(KeyEnv, "")
	s := testSession(t)
	require.NoError(t, s.Put("yieldcli.sessionwallet", "0xsessionkey"))
	sessionCache.Delete("yieldcli.sessionwallet")
	t.Cleanup(func() { sessionCache.Delete("yieldcli.sessionwallet") })

	ks := &Keystore{session: s}
	got, err := ks.Retrieve("yieldcli.sessionwallet")
	require.NoError(t, err)
	assert.Equal(t, "0xsessionkey", got)

	_, cached := sessionCache.Load("yieldcli.sessionwallet")
	assert.True(t, cached, "session hits are cached in-process")
}

func TestKeystoreRetrieveNilRingNoSession(t *testing.T) {
	t.Setenv(KeyEnv, "")
	sessionCache.Delete("yieldcli.ghost")

	ks := &Keystore{session: testSession(t)}
	_, err := ks.Retrieve("yieldcli.ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestKeystoreStoreNilRing(t *testing.T) {
	_, err := (&Keystore{}).Store("x", testPrivKeyHex)
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Keystore.Delete
// ---------------------------------------------------------------------------

func TestKeystoreDeleteClearsSessionAndCache(t *testing.T) {
	s := testSession(t)
	require.NoError(t, s.Put("yieldcli.todelete", "somekey"))
	sessionCache.Store("yieldcli.todelete", "somekey")

	ks := &Keystore{session: s}
	require.NoError(t, ks.Delete("yieldcli.todelete"))

	_, ok := s.Get("yieldcli.todelete")
	assert.False(t, ok, "session entry should be removed by Delete")
	_, inCache := sessionCache.Load("yieldcli.todelete")
	assert.False(t, inCache, "in-process cache entry should be removed by Delete")
}

func TestKeystoreRoundTripFileBackend(t *testing.T) {
	t.Setenv(KeyEnv, "")
	ks := testKeystore(t)
	ref, err := ks.Store("roundtrip", testPrivKeyHex)
	require.NoError(t, err)
	t.Cleanup(func() { sessionCache.Delete(ref) })

	got, err := ks.Retrieve(ref)
	require.NoError(t, err)
	assert.Equal(t, testPrivKeyHex, got)

	require.NoError(t, ks.Delete(ref))
	_, err = ks.Retrieve(ref)
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// InMemoryKeystore
// ---------------------------------------------------------------------------

func TestInMemoryKeystoreStoreAndRetrieve(t *testing.T) {
	iks := NewInMemoryKeystore()
	ref, err := iks.Store("mykey", "0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, "yieldcli.mykey", ref)

	val, err := iks.Retrieve(ref)
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", val)
}

func TestInMemoryKeystoreRetrieveNotFound(t *testing.T) {
	_, err := NewInMemoryKeystore().Retrieve("yieldcli.ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestInMemoryKeystoreDelete(t *testing.T) {
	iks := NewInMemoryKeystore()
	ref, _ := iks.Store("del", "secret")

	require.NoError(t, iks.Delete(ref))
	_, err := iks.Retrieve(ref)
	require.Error(t, err, "key should be gone after delete")

	assert.NoError(t, iks.Delete("yieldcli.ghost"), "deleting missing key must not error")
}

func TestInMemoryKeystoreOverwrite(t *testing.T) {
	iks := NewInMemoryKeystore()
	iks.Store("k", "first")  //nolint:errcheck
	iks.Store("k", "second") //nolint:errcheck

	val, err := iks.Retrieve("yieldcli.k")
	require.NoError(t, err)
	assert.Equal(t, "second", val)
}
