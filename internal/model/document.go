package model

import "time"

// DocumentID uniquely identifies a stored document
type DocumentID string

// Document is a rich-text document held on behalf of a user.
// Content is the editor's internal encoding (SFDT), produced either by the
// editor itself or by the external import service; the server treats it as
// opaque text.
type Document struct {
	ID         DocumentID `json:"id"`
	Name       string     `json:"name"`
	OwnerEmail string     `json:"owner_email"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
