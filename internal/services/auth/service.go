package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/draftpad/draftpad-go/internal/dependencies/clock"
	"github.com/draftpad/draftpad-go/internal/model"
	"github.com/draftpad/draftpad-go/internal/storage"
)

// Errors
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service handles account registration and credential verification
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Register creates a new user account with a bcrypt-hashed password.
// Duplicate checks are delegated to the storage layer, which enforces them
// atomically: a taken username is reported before a taken email.
//
// Email format is not validated here; the client validates before calling.
func (s *Service) Register(ctx context.Context, username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user registered", slog.String("email", email))
	return nil
}

// Login verifies the password for the account with the given email and
// returns the account's non-secret identity. A missing account and a wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Identity, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	identity := user.Identity()
	return &identity, nil
}
