// Package session persists the one piece of cross-request client state: the
// opaque auth token, plus the last known user profile blob. Expiry is never
// tracked here; the API client clears the store when it sees a 401.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileName = "session.json"

type state struct {
	Token   string          `json:"token,omitempty"`
	Profile json.RawMessage `json:"profile,omitempty"`
}

// Store is a file-backed token holder, safe for concurrent use within one
// process. All mutations rewrite the backing file immediately.
type Store struct {
	mu    sync.RWMutex
	path  string
	state state
}

// DefaultDir resolves the per-user data directory (~/.icare).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".icare"), nil
}

// Open loads the session file under dir, creating dir if needed. A missing
// file is a valid logged-out session.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	s := &Store{path: filepath.Join(dir, fileName)}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		// A corrupt file is treated as logged out rather than fatal.
		s.state = state{}
	}
	return s, nil
}

// Token returns the stored token, reporting whether one is present.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token, s.state.Token != ""
}

// Save stores a freshly issued token and the profile it came with.
func (s *Store) Save(token string, profile any) error {
	blob, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state{Token: token, Profile: blob}
	return s.flushLocked()
}

// Profile decodes the stored profile blob into out. Returns false when no
// profile is stored.
func (s *Store) Profile(out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.state.Profile) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(s.state.Profile, out); err != nil {
		return false, fmt.Errorf("decode stored profile: %w", err)
	}
	return true, nil
}

// Clear drops the token and profile: logout, account deletion, or a 401.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state{}
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
