package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/draftpad/draftpad-go/internal/model"
	"github.com/draftpad/draftpad-go/internal/services/auth"
	"github.com/draftpad/draftpad-go/internal/services/document"
)

// ErrorResponse is the wire shape of every API failure. The body is a flat
// message object, matching what the browser client displays verbatim.
type ErrorResponse struct {
	Message string `json:"message"`
}

// httpError combines an HTTP status code with a user-facing message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Message: he.message})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Registration rejections are specific so the user can correct them
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusBadRequest, "Username already exists"}
	case errors.Is(err, model.ErrEmailExists):
		return &httpError{http.StatusBadRequest, "Email already registered"}

	// Authentication failures are deliberately uninformative
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "Invalid credentials"}

	case errors.Is(err, model.ErrDocumentNotFound):
		return &httpError{http.StatusNotFound, "Document not found"}
	case errors.Is(err, document.ErrNoConverter):
		return &httpError{http.StatusServiceUnavailable, "Document import is not available"}
	case errors.Is(err, document.ErrConversionFailed):
		return &httpError{http.StatusBadGateway, "Document conversion failed"}

	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewInvalidRequestError creates a 400 error with the given message
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
