package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SaveDocumentRequest is the request body for saving a document
type SaveDocumentRequest struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	OwnerEmail string `json:"owner_email"`
	Content    string `json:"content"`
}
