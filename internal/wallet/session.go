package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Session is the on-disk cache of unlocked signing keys. While a key is in
// the session, signing does not touch the OS keychain (no prompt per tx).
type Session struct {
	path string
}

// NewSession returns a session backed by the file at path.
func NewSession(path string) *Session {
	return &Session{path: path}
}

// DefaultSession uses the per-user cache directory, with 0600 permissions so
// only the current user can read it.
//
//	macOS:   ~/Library/Caches/yieldcli/session.json
//	Linux:   ~/.cache/yieldcli/session.json
//	Windows: %LocalAppData%\yieldcli\session.json
func DefaultSession() *Session {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return NewSession(filepath.Join(dir, keychainService, "session.json"))
}

// Path returns the session file location.
func (s *Session) Path() string { return s.path }

// load returns the key map, empty (never nil) on any error.
func (s *Session) load() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return make(map[string]string)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return make(map[string]string)
	}
	if m == nil {
		m = make(map[string]string)
	}
	return m
}

func (s *Session) save(m map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return err
	}
	_ = os.Chmod(s.path, 0o600)
	return nil
}

// Snapshot returns a copy of the whole session in a single file read.
func (s *Session) Snapshot() map[string]string {
	return s.load()
}

// Get returns a cached key for ref, or ("", false) if not cached.
func (s *Session) Get(ref string) (string, bool) {
	v, ok := s.load()[ref]
	return v, ok
}

// Put caches a key for ref.
func (s *Session) Put(ref, hexKey string) error {
	m := s.load()
	m[ref] = hexKey
	return s.save(m)
}

// PutAll merges keys into the session in a single read and write.
func (s *Session) PutAll(keys map[string]string) error {
	if len(keys) == 0 {
		return nil
	}
	m := s.load()
	for ref, hexKey := range keys {
		m[ref] = hexKey
	}
	return s.save(m)
}

// Remove evicts a single key.
func (s *Session) Remove(ref string) error {
	m := s.load()
	if _, ok := m[ref]; !ok {
		return nil
	}
	delete(m, ref)
	return s.save(m)
}

// Clear removes all cached keys by deleting the session file.
func (s *Session) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Active reports whether the session holds at least one key.
func (s *Session) Active() bool {
	return len(s.load()) > 0
}

// Unlocked reports whether the named wallet's key is in the session.
func (s *Session) Unlocked(name string) bool {
	_, ok := s.Get(KeyRef(name))
	return ok
}
