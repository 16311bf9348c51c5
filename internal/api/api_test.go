package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/draftpad/draftpad-go/internal/api"
	"github.com/draftpad/draftpad-go/internal/api/response"
	"github.com/draftpad/draftpad-go/internal/dependencies/clock"
	"github.com/draftpad/draftpad-go/internal/services/auth"
	"github.com/draftpad/draftpad-go/internal/services/document"
	"github.com/draftpad/draftpad-go/internal/storage/memory"
)

// fakeConverter stands in for the external conversion service
type fakeConverter struct {
	result string
	err    error
}

func (f *fakeConverter) Convert(_ context.Context, _ string, _ io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

// testServer creates a test server with all dependencies
type testServer struct {
	handler   http.Handler
	storage   *memory.Storage
	converter *fakeConverter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	store := memory.New()
	clk := clock.New()
	converter := &fakeConverter{result: `{"sections":[]}`}

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     auth.New(store, clk, logger),
		DocumentService: document.New(store, converter, clk, logger),
	})

	return &testServer{
		handler:   router,
		storage:   store,
		converter: converter,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func message(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Message
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/auth/register", registerBody)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "User registered successfully", message(t, rr))

	loginBody := map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/auth/login", loginBody)
	assert.Equal(t, http.StatusOK, rr.Code)

	var identity response.Identity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &identity))
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, "alice@example.com", identity.Email)
}

func TestLoginNeverEchoesTheHash(t *testing.T) {
	ts := newTestServer(t)

	_ = ts.request(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})

	rr := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fields))
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "password_hash")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	_ = ts.request(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})

	rr := ts.request(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Username already exists", message(t, rr))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)

	_ = ts.request(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})

	rr := ts.request(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice2", "email": "alice@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Email already registered", message(t, rr))
}

func TestLoginRejectionsAreIndistinguishable(t *testing.T) {
	ts := newTestServer(t)

	_ = ts.request(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})

	wrongPass := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	unknownEmail := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "nobody@example.com", "password": "secret123",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, "Invalid credentials", message(t, wrongPass))
	assert.Equal(t, wrongPass.Body.String(), unknownEmail.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "email": "alice@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegisteredPasswordsVerifyAgainstStoredHashes(t *testing.T) {
	ts := newTestServer(t)

	passwords := map[string]string{
		"a@example.com": "first-password",
		"b@example.com": "second-password",
		"c@example.com": "third-password",
	}
	for email, password := range passwords {
		rr := ts.request(http.MethodPost, "/api/auth/register", map[string]string{
			"email": email, "password": password,
		})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	users, err := ts.storage.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, len(passwords))

	for _, user := range users {
		plaintext := passwords[user.Email]
		assert.NotEqual(t, plaintext, user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext)))
	}
}

func TestDocumentLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// Save
	rr := ts.request(http.MethodPost, "/api/documents", map[string]string{
		"name":        "Vendor Agreement",
		"owner_email": "alice@example.com",
		"content":     `{"sections":[]}`,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var doc response.Document
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "Vendor Agreement", doc.Name)

	// Get
	rr = ts.request(http.MethodGet, "/api/documents/"+doc.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	// List
	rr = ts.request(http.MethodGet, "/api/documents?owner=alice@example.com", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var docs []response.Document
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Empty(t, docs[0].Content) // listings omit content

	// Delete
	rr = ts.request(http.MethodDelete, "/api/documents/"+doc.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/documents/"+doc.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Document not found", message(t, rr))
}

func TestDocumentImport(t *testing.T) {
	ts := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("files", "agreement.docx")
	require.NoError(t, err)
	_, _ = part.Write([]byte("docx bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"sections":[]}`, rr.Body.String())
}

func TestDocumentImportConversionFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.converter.err = document.ErrConversionFailed

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("files", "agreement.docx")
	_, _ = part.Write([]byte("docx bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, "Document conversion failed", message(t, rr))
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
