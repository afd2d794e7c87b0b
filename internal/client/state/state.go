// Package state persists the client's session and preferences in a local
// JSON file.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/atinyakov/VocabDeck/internal/models"
)

// DefaultLanguage is the target language used until the user picks one.
const DefaultLanguage = "Danish"

// State is the persisted client state. All methods are safe for concurrent use.
type State struct {
	mu   sync.Mutex
	path string
	data fileData
}

type fileData struct {
	AccessToken string    `json:"access_token,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitzero"`
	// Language is the target language preference.
	Language    string `json:"language,omitempty"`
	ProviderKey string `json:"provider_key,omitempty"`
}

// Load reads the state file at path. A missing file yields an empty state.
func Load(path string) (*State, error) {
	s := &State{path: path}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("open state: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&s.data); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return s, nil
}

// Save writes the state file with owner-only permissions.
func (s *State) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *State) saveLocked() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	b, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// AccessToken returns the stored bearer token, or "" when signed out.
func (s *State) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.AccessToken
}

// UserID returns the signed-in user, or "".
func (s *State) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.UserID
}

// SetSession stores sess and saves the file.
func (s *State) SetSession(sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AccessToken = sess.AccessToken
	s.data.UserID = sess.UserID
	s.data.ExpiresAt = sess.ExpiresAt
	return s.saveLocked()
}

// ClearSession forgets the session and saves the file. Preferences are kept.
func (s *State) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AccessToken = ""
	s.data.UserID = ""
	s.data.ExpiresAt = time.Time{}
	return s.saveLocked()
}

// Language returns the target language, DefaultLanguage when unset.
func (s *State) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.Language == "" {
		return DefaultLanguage
	}
	return s.data.Language
}

// SetLanguage stores the target language. An empty value restores the default.
func (s *State) SetLanguage(lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Language = lang
	return s.saveLocked()
}

// ProviderKey returns the user's own completion provider key, if any.
func (s *State) ProviderKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.ProviderKey
}

// SetProviderKey stores the provider key. An empty value removes it.
func (s *State) SetProviderKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.ProviderKey = key
	return s.saveLocked()
}
