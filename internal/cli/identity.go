package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ErrNotLoggedIn is returned when no identity has been stored
var ErrNotLoggedIn = errors.New("not logged in")

// Identity is the signed-in user as held by the client. It contains only
// non-secret fields; the server never hands the client anything else.
type Identity struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
}

// DisplayName returns the name to greet the user by
func (i Identity) DisplayName() string {
	if i.Username != "" {
		return i.Username
	}
	return i.Email
}

// IdentityStore persists the signed-in identity between invocations.
// It stands in for the browser client's local storage.
type IdentityStore interface {
	Save(identity Identity) error
	Load() (*Identity, error)
	Clear() error
}

// FileIdentityStore keeps the identity in a JSON file
type FileIdentityStore struct {
	path string
}

// NewFileIdentityStore creates a store backed by the file at path
func NewFileIdentityStore(path string) *FileIdentityStore {
	return &FileIdentityStore{path: path}
}

// Ensure FileIdentityStore implements IdentityStore
var _ IdentityStore = (*FileIdentityStore)(nil)

// Save writes the identity to the backing file
func (s *FileIdentityStore) Save(identity Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Load reads the stored identity, or ErrNotLoggedIn if there is none
func (s *FileIdentityStore) Load() (*Identity, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}

	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Clear removes the stored identity. Clearing when not logged in is a no-op.
func (s *FileIdentityStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
