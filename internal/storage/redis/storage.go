package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/draftpad/draftpad-go/internal/model"
	"github.com/draftpad/draftpad-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Reserve the username first via SETNX so racing registrations cannot
	// both claim it, then the email key the same way. Username is checked
	// before email so the rejection reason is deterministic.
	if user.Username != "" {
		ok, err := s.client.SetNX(ctx, usernameIndexKey(user.Username), user.Email, 0).Result()
		if err != nil {
			return err
		}
		if !ok {
			return model.ErrUsernameExists
		}
	}

	ok, err := s.client.SetNX(ctx, userKey(user.Email), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		// Release the username reservation taken above
		if user.Username != "" {
			_ = s.client.Del(ctx, usernameIndexKey(user.Username)).Err()
		}
		return model.ErrEmailExists
	}

	return s.client.SAdd(ctx, usersIndexKey(), user.Email).Err()
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	email, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUserByEmail(ctx, email)
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	emails, err := s.client.SMembers(ctx, usersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(emails))
	for _, email := range emails {
		user, err := s.GetUserByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// Document operations

func (s *Storage) SaveDocument(ctx context.Context, doc *model.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, documentKey(doc.ID), data, 0)
	pipe.SAdd(ctx, documentsForOwnerIndexKey(doc.OwnerEmail), string(doc.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetDocument(ctx context.Context, id model.DocumentID) (*model.Document, error) {
	data, err := s.client.Get(ctx, documentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDocumentNotFound
		}
		return nil, err
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Storage) ListDocumentsByOwner(ctx context.Context, ownerEmail string) ([]*model.Document, error) {
	ids, err := s.client.SMembers(ctx, documentsForOwnerIndexKey(ownerEmail)).Result()
	if err != nil {
		return nil, err
	}

	docs := make([]*model.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := s.GetDocument(ctx, model.DocumentID(id))
		if err != nil {
			if errors.Is(err, model.ErrDocumentNotFound) {
				continue
			}
			return nil, err
		}
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs, nil
}

func (s *Storage) DeleteDocument(ctx context.Context, id model.DocumentID) error {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, documentKey(id))
	pipe.SRem(ctx, documentsForOwnerIndexKey(doc.OwnerEmail), string(id))
	_, err = pipe.Exec(ctx)
	return err
}
