package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/draftpad/draftpad-go/internal/dependencies/mocks"
	"github.com/draftpad/draftpad-go/internal/model"
	"github.com/draftpad/draftpad-go/internal/storage/memory"
	"github.com/draftpad/draftpad-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	err := s.service.Register(s.ctx, "alice", "alice@example.com", "password123")
	s.Require().NoError(err)

	user, err := s.storage.GetUserByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
	s.Equal(s.clock.CurrentTime, user.CreatedAt)
}

func (s *ServiceSuite) TestRegisterStoresHashNotPlaintext() {
	_ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	user, err := s.storage.GetUserByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.NotEqual("password123", user.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}

func (s *ServiceSuite) TestRegisterWithoutUsernameSucceeds() {
	err := s.service.Register(s.ctx, "", "anon@example.com", "password123")
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameExists() {
	_ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	err := s.service.Register(s.ctx, "alice", "other@example.com", "different")
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *ServiceSuite) TestRegisterFailsIfEmailExists() {
	_ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	err := s.service.Register(s.ctx, "alice2", "alice@example.com", "different")
	s.ErrorIs(err, model.ErrEmailExists)
}

func (s *ServiceSuite) TestRegisterReportsUsernameConflictBeforeEmailConflict() {
	_ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	// Both taken: the username reason wins
	err := s.service.Register(s.ctx, "alice", "alice@example.com", "password123")
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *ServiceSuite) TestConcurrentRegistrationsSameEmailAtMostOneSucceeds() {
	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			username := ""
			errs[i] = s.service.Register(s.ctx, username, "race@example.com", "password123")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			s.ErrorIs(err, model.ErrEmailExists)
		}
	}
	s.Equal(1, successes)

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 1)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	identity, err := s.service.Login(s.ctx, "alice@example.com", "password123")
	s.Require().NoError(err)
	s.Equal("alice", identity.Username)
	s.Equal("alice@example.com", identity.Email)
}

func (s *ServiceSuite) TestLoginReturnsOnlyNonSecretFields() {
	_ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	identity, err := s.service.Login(s.ctx, "alice@example.com", "password123")
	s.Require().NoError(err)
	s.Equal(model.Identity{Username: "alice", Email: "alice@example.com"}, *identity)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	_, err := s.service.Login(s.ctx, "alice@example.com", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownEmail() {
	_, err := s.service.Login(s.ctx, "nobody@example.com", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailuresAreIndistinguishable() {
	_ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	_, wrongPass := s.service.Login(s.ctx, "alice@example.com", "wrongpassword")
	_, unknownEmail := s.service.Login(s.ctx, "nobody@example.com", "password123")
	s.Equal(wrongPass, unknownEmail)
}
