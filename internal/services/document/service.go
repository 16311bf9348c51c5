package document

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/draftpad/draftpad-go/internal/dependencies/clock"
	"github.com/draftpad/draftpad-go/internal/model"
	"github.com/draftpad/draftpad-go/internal/storage"
)

// Errors
var (
	ErrNoConverter      = errors.New("no conversion service configured")
	ErrConversionFailed = errors.New("document conversion failed")
)

// Service hosts documents on behalf of authenticated users and proxies
// imports through the external conversion service
type Service struct {
	storage   storage.Storage
	converter Converter
	clock     clock.Clock
	logger    *slog.Logger
}

// New creates a new document Service. converter may be nil, in which case
// Import returns ErrNoConverter.
func New(storage storage.Storage, converter Converter, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:   storage,
		converter: converter,
		clock:     clock,
		logger:    logger,
	}
}

// Import converts an uploaded file to SFDT via the conversion service.
// The result is returned to the caller for the editor to open; nothing is
// persisted until the client saves.
func (s *Service) Import(ctx context.Context, filename string, file io.Reader) (string, error) {
	if s.converter == nil {
		return "", ErrNoConverter
	}

	sfdt, err := s.converter.Convert(ctx, filename, file)
	if err != nil {
		return "", err
	}

	s.logger.Info("document imported", slog.String("filename", filename))
	return sfdt, nil
}

// Save stores a document tagged with its owner's email. A zero ID creates a
// new document; an existing ID overwrites. Unnamed documents get the
// editor's default title.
func (s *Service) Save(ctx context.Context, id model.DocumentID, name, ownerEmail, content string) (*model.Document, error) {
	now := s.clock.Now()

	if name == "" {
		name = "Untitled"
	}

	if id == "" {
		doc := &model.Document{
			ID:         model.DocumentID(uuid.NewString()),
			Name:       name,
			OwnerEmail: ownerEmail,
			Content:    content,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return doc, s.storage.SaveDocument(ctx, doc)
	}

	doc, err := s.storage.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Name = name
	doc.Content = content
	doc.UpdatedAt = now
	return doc, s.storage.SaveDocument(ctx, doc)
}

// Get returns a stored document by ID
func (s *Service) Get(ctx context.Context, id model.DocumentID) (*model.Document, error) {
	return s.storage.GetDocument(ctx, id)
}

// ListByOwner returns all documents owned by the given email
func (s *Service) ListByOwner(ctx context.Context, ownerEmail string) ([]*model.Document, error) {
	return s.storage.ListDocumentsByOwner(ctx, ownerEmail)
}

// Delete removes a stored document
func (s *Service) Delete(ctx context.Context, id model.DocumentID) error {
	return s.storage.DeleteDocument(ctx, id)
}
