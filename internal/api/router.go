package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/draftpad/draftpad-go/internal/api/handler"
	"github.com/draftpad/draftpad-go/internal/api/middleware"
	"github.com/draftpad/draftpad-go/internal/services/auth"
	"github.com/draftpad/draftpad-go/internal/services/document"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	DocumentService *document.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	documentHandler := handler.NewDocumentHandler(cfg.DocumentService)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(middleware.CORS)

	// Authentication routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost, http.MethodOptions)

	// Document routes. Ownership is client-asserted: the server keeps no
	// session, so these trust the owner email the client provides.
	api.HandleFunc("/documents/import", documentHandler.Import).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/documents", documentHandler.Save).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/documents", documentHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}", documentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}", documentHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
