package wallet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/99designs/keyring"
)

const (
	keychainService = "yieldcli"

	// KeyEnv overrides every stored key; meant for CI and scripted use.
	KeyEnv = "YIELDCLI_KEY"
)

// KeystoreBackend stores and retrieves signing keys by reference.
type KeystoreBackend interface {
	Store(name, hexKey string) (ref string, err error)
	Retrieve(ref string) (string, error)
	Delete(ref string) error
}

// KeyRef is the keychain reference for a wallet name.
func KeyRef(name string) string {
	return keychainService + "." + name
}

// sessionCache avoids re-reading the session file and re-prompting the
// keychain within one process.
var sessionCache sync.Map

// Keystore wraps OS keychain access behind the session cache.
type Keystore struct {
	ring    keyring.Keyring
	session *Session
}

// DefaultKeystore returns a keystore backed by the OS keychain.
func DefaultKeystore() *Keystore {
	return OpenKeystore("", DefaultSession())
}

// OpenKeystore opens the OS keychain; fileDir is used by the encrypted file
// backend on systems without a keychain daemon.
func OpenKeystore(fileDir string, session *Session) *Keystore {
	if fileDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			fileDir = filepath.Join(home, "."+keychainService, "keys")
		}
	}
	cfg := keyring.Config{
		ServiceName:              keychainService,
		KeychainTrustApplication: true,
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.TerminalPrompt,
	}

	// On Linux without a GUI, fall back to file-based storage.
	if runtime.GOOS == "linux" {
		cfg.AllowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.FileBackend,
		}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
		ring, _ = keyring.Open(cfg)
	}

	return &Keystore{ring: ring, session: session}
}

// Store saves a private key for a wallet name and returns a reference key.
func (k *Keystore) Store(name, hexKey string) (string, error) {
	ref := KeyRef(name)
	if k.ring == nil {
		return "", fmt.Errorf("keystore not available")
	}
	err := k.ring.Set(keyring.Item{
		Key:  ref,
		Data: []byte(hexKey),
	})
	if err != nil {
		return "", fmt.Errorf("keychain store: %w", err)
	}
	return ref, nil
}

// Retrieve fetches a private key by its reference. Lookup order: the
// YIELDCLI_KEY override, the in-process cache, the session file, the keychain.
func (k *Keystore) Retrieve(ref string) (string, error) {
	if v := os.Getenv(KeyEnv); v != "" {
		return normaliseHexKey(v), nil
	}
	if v, ok := sessionCache.Load(ref); ok {
		return v.(string), nil
	}
	if k.session != nil {
		if v, ok := k.session.Get(ref); ok {
			sessionCache.Store(ref, v)
			return v, nil
		}
	}
	if k.ring == nil {
		return "", fmt.Errorf("keystore not available")
	}
	item, err := k.ring.Get(ref)
	if err != nil {
		return "", fmt.Errorf("keychain retrieve: %w", err)
	}
	v := string(item.Data)
	sessionCache.Store(ref, v)
	return v, nil
}

// Delete removes a stored key from the keychain, the session and the
// in-process cache.
func (k *Keystore) Delete(ref string) error {
	sessionCache.Delete(ref)
	if k.session != nil {
		if err := k.session.Remove(ref); err != nil {
			return err
		}
	}
	if k.ring == nil {
		return nil
	}
	if err := k.ring.Remove(ref); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

// InMemoryKeystore stores keys in memory (for tests and watch-only runs).
type InMemoryKeystore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewInMemoryKeystore creates an in-memory keystore.
func NewInMemoryKeystore() *InMemoryKeystore {
	return &InMemoryKeystore{data: make(map[string]string)}
}

func (k *InMemoryKeystore) Store(name, hexKey string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	ref := KeyRef(name)
	k.data[ref] = hexKey
	return ref, nil
}

func (k *InMemoryKeystore) Retrieve(ref string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.data[ref]
	if !ok {
		return "", fmt.Errorf("key not found: %s", ref)
	}
	return v, nil
}

func (k *InMemoryKeystore) Delete(ref string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.data, ref)
	return nil
}

// normaliseHexKey trims whitespace and any 0x/0X prefix.
func normaliseHexKey(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}
