// ABOUTME: Persisted bearer token storage in the XDG config directory
// ABOUTME: One atomic string value; absence means anonymous

package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const tokenFileName = "auth_token"

// TokenStore persists the bearer credential as a single file under the
// config directory. Reads and writes are mutex-guarded; writes are
// last-write-wins since the token is one atomic value.
type TokenStore struct {
	configDir string
	mu        sync.Mutex
}

// NewTokenStore creates a token store rooted at the given config directory.
func NewTokenStore(configDir string) *TokenStore {
	return &TokenStore{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following the XDG
// base directory convention.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "webcost")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "webcost")
}

func (s *TokenStore) tokenFile() string {
	return filepath.Join(s.configDir, tokenFileName)
}

// Token returns the stored token, or "" when none is persisted.
func (s *TokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.tokenFile())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save persists the token, replacing any previous value.
func (s *TokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.tokenFile(), []byte(token), 0600)
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.tokenFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
