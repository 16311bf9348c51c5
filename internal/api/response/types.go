package response

import (
	"time"

	"github.com/draftpad/draftpad-go/internal/model"
)

// MessageResponse carries a human-readable status message
type MessageResponse struct {
	Message string `json:"message"`
}

// Identity is the non-secret user representation returned by login.
// The password hash is never part of any response.
type Identity struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
}

// IdentityFromModel converts a model.Identity to a response Identity
func IdentityFromModel(id *model.Identity) Identity {
	return Identity{
		Username: id.Username,
		Email:    id.Email,
	}
}

// Document represents a stored document in API responses
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OwnerEmail string    `json:"owner_email"`
	Content    string    `json:"content,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DocumentFromModel converts a model.Document to a response Document
func DocumentFromModel(d *model.Document) Document {
	return Document{
		ID:         string(d.ID),
		Name:       d.Name,
		OwnerEmail: d.OwnerEmail,
		Content:    d.Content,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// DocumentSummaryFromModel converts a model.Document to a response Document
// without its content, for listings
func DocumentSummaryFromModel(d *model.Document) Document {
	doc := DocumentFromModel(d)
	doc.Content = ""
	return doc
}
