// Package file implements storage backed by flat JSON files.
//
// The on-disk format is deliberately simple for compatibility with the
// original demo: users live in a single JSON array that is read in full on
// every access and rewritten in full on every change. Rewrites go through a
// temp file and rename so a crash mid-write cannot truncate the store, and a
// per-store mutex serializes writers so the uniqueness checks in CreateUser
// actually hold under concurrent registration.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/draftpad/draftpad-go/internal/model"
	"github.com/draftpad/draftpad-go/internal/storage"
)

// Storage is a flat-file implementation of the storage interface
type Storage struct {
	mu sync.Mutex

	usersPath     string
	documentsPath string
}

// New creates a file storage rooted at dir. The directory is created if it
// does not exist.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &Storage{
		usersPath:     filepath.Join(dir, "users.json"),
		documentsPath: filepath.Join(dir, "documents.json"),
	}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// loadUsers reads the full user collection. A missing file is an empty
// store; a file that exists but does not decode is a propagated error.
func (s *Storage) loadUsers() ([]*model.User, error) {
	var users []*model.User
	if err := loadJSON(s.usersPath, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// saveUsers rewrites the full user collection atomically.
func (s *Storage) saveUsers(users []*model.User) error {
	return saveJSON(s.usersPath, users)
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return err
	}

	// Username checked before email so the rejection reason is deterministic
	for _, u := range users {
		if user.Username != "" && u.Username == user.Username {
			return model.ErrUsernameExists
		}
	}
	for _, u := range users {
		if u.Email == user.Email {
			return model.ErrEmailExists
		}
	}

	users = append(users, user)
	return s.saveUsers(users)
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	// Records may omit the username, so an empty lookup never matches
	if username == "" {
		return nil, model.ErrUserNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUsers()
}

// Document operations

func (s *Storage) loadDocuments() ([]*model.Document, error) {
	var docs []*model.Document
	if err := loadJSON(s.documentsPath, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Storage) saveDocuments(docs []*model.Document) error {
	return saveJSON(s.documentsPath, docs)
}

func (s *Storage) SaveDocument(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.loadDocuments()
	if err != nil {
		return err
	}
	for i, d := range docs {
		if d.ID == doc.ID {
			docs[i] = doc
			return s.saveDocuments(docs)
		}
	}
	docs = append(docs, doc)
	return s.saveDocuments(docs)
}

func (s *Storage) GetDocument(ctx context.Context, id model.DocumentID) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.loadDocuments()
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, model.ErrDocumentNotFound
}

func (s *Storage) ListDocumentsByOwner(ctx context.Context, ownerEmail string) ([]*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.loadDocuments()
	if err != nil {
		return nil, err
	}
	var owned []*model.Document
	for _, d := range docs {
		if d.OwnerEmail == ownerEmail {
			owned = append(owned, d)
		}
	}
	return owned, nil
}

func (s *Storage) DeleteDocument(ctx context.Context, id model.DocumentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.loadDocuments()
	if err != nil {
		return err
	}
	for i, d := range docs {
		if d.ID == id {
			docs = append(docs[:i], docs[i+1:]...)
			return s.saveDocuments(docs)
		}
	}
	return model.ErrDocumentNotFound
}

// loadJSON decodes the file at path into v, treating a missing file as empty
func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// saveJSON writes v to path via a temp file and rename, so readers never
// observe a partial write
func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
