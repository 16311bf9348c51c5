package redis

import (
	"fmt"

	"github.com/draftpad/draftpad-go/internal/model"
)

// Key prefix for all application data
const keyPrefix = "draftpad"

// Key generation functions for each entity type

// userKey returns the Redis key for a User, keyed by email
func userKey(email string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, email)
}

// usernameIndexKey returns the Redis key for the username -> email index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// usersIndexKey returns the Redis key for the SET of all user emails
func usersIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}

// documentKey returns the Redis key for a Document
func documentKey(id model.DocumentID) string {
	return fmt.Sprintf("%s:document:%s", keyPrefix, id)
}

// documentsForOwnerIndexKey returns the Redis key for the SET of document
// keys owned by a user
func documentsForOwnerIndexKey(ownerEmail string) string {
	return fmt.Sprintf("%s:idx:docs_for_owner:%s", keyPrefix, ownerEmail)
}
