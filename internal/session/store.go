// ABOUTME: Persisted credential store for the livraria CLI
// ABOUTME: Keeps exactly one bearer token in the XDG config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Store holds the single session credential. Memory and disk are updated
// together under one lock, so a reader always sees the latest write. The
// session Manager is the only writer; the API client reads via Token.
type Store struct {
	configDir string

	mu     sync.Mutex
	token  string
	loaded bool
}

type tokenData struct {
	Token string `json:"token"`
}

// NewStore creates a credential store rooted at the given config directory.
func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "livraria")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "livraria")
}

func (s *Store) tokenFile() string {
	return filepath.Join(s.configDir, "token.json")
}

// Token returns the current credential, or "" when none exists.
// Implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	return s.token
}

// Set persists a new credential, updating memory and disk together.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.tokenFile(), data, 0600); err != nil {
		return err
	}
	s.token = token
	s.loaded = true
	return nil
}

// Clear removes the credential from memory and disk. Safe to call when no
// credential exists.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.loaded = true
	err := os.Remove(s.tokenFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// loadLocked reads the token file once. Missing or corrupt files count as no
// credential.
func (s *Store) loadLocked() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := os.ReadFile(s.tokenFile())
	if err != nil {
		return
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return
	}
	s.token = td.Token
}
