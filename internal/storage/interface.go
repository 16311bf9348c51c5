package storage

import (
	"context"

	"github.com/draftpad/draftpad-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations.
	//
	// CreateUser has insert-if-absent semantics: it must atomically reject a
	// duplicate username with model.ErrUsernameExists (checked first) or a
	// duplicate email with model.ErrEmailExists. Callers rely on the check
	// order being observable.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)

	// Document operations
	SaveDocument(ctx context.Context, doc *model.Document) error
	GetDocument(ctx context.Context, id model.DocumentID) (*model.Document, error)
	ListDocumentsByOwner(ctx context.Context, ownerEmail string) ([]*model.Document, error)
	DeleteDocument(ctx context.Context, id model.DocumentID) error
}
