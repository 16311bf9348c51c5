package model

import "time"

// User represents a registered account in the credential store.
// Email is the unique login key; Username is optional display identity
// but must also be unique when present.
type User struct {
	Username     string    `json:"username,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"` // bcrypt hash, never the plaintext
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the non-secret projection of a User returned after a
// successful login. The password hash is never part of it.
type Identity struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
}

// Identity returns the non-secret fields of the user.
func (u *User) Identity() Identity {
	return Identity{
		Username: u.Username,
		Email:    u.Email,
	}
}
