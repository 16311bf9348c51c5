package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/draftpad/draftpad-go/internal/model"
	"github.com/draftpad/draftpad-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	usersByEmail  map[string]*model.User
	usernameIndex map[string]string // username -> email
	documents     map[model.DocumentID]*model.Document
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		usersByEmail:  make(map[string]*model.User),
		usernameIndex: make(map[string]string),
		documents:     make(map[model.DocumentID]*model.Document),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Username checked before email so the rejection reason is deterministic
	if user.Username != "" {
		if _, ok := s.usernameIndex[user.Username]; ok {
			return model.ErrUsernameExists
		}
	}
	if _, ok := s.usersByEmail[user.Email]; ok {
		return model.ErrEmailExists
	}

	s.usersByEmail[user.Email] = user
	if user.Username != "" {
		s.usernameIndex[user.Username] = user.Email
	}
	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.usersByEmail[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.usersByEmail[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.usersByEmail))
	for _, user := range s.usersByEmail {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// Document operations

func (s *Storage) SaveDocument(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = doc
	return nil
}

func (s *Storage) GetDocument(ctx context.Context, id model.DocumentID) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, model.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *Storage) ListDocumentsByOwner(ctx context.Context, ownerEmail string) ([]*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []*model.Document
	for _, doc := range s.documents {
		if doc.OwnerEmail == ownerEmail {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs, nil
}

func (s *Storage) DeleteDocument(ctx context.Context, id model.DocumentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return model.ErrDocumentNotFound
	}
	delete(s.documents, id)
	return nil
}
