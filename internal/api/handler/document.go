package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/draftpad/draftpad-go/internal/api/apierr"
	"github.com/draftpad/draftpad-go/internal/api/request"
	"github.com/draftpad/draftpad-go/internal/api/response"
	"github.com/draftpad/draftpad-go/internal/model"
	"github.com/draftpad/draftpad-go/internal/services/document"
)

// maxImportSize bounds uploads to the import endpoint (20 MiB)
const maxImportSize = 20 << 20

// DocumentHandler handles document hosting endpoints
type DocumentHandler struct {
	documentService *document.Service
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *document.Service) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// Import handles POST /api/documents/import
//
// Accepts a multipart upload under the "files" field, mirroring the external
// conversion service's own contract, and responds with the SFDT text.
func (h *DocumentHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)

	file, header, err := r.FormFile("files")
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("a file upload named 'files' is required"))
		return
	}
	defer func() { _ = file.Close() }()

	sfdt, err := h.documentService.Import(r.Context(), header.Filename, file)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Text(w, http.StatusOK, sfdt)
}

// Save handles POST /api/documents
func (h *DocumentHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req request.SaveDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.OwnerEmail == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("owner_email is required"))
		return
	}

	doc, err := h.documentService.Save(r.Context(), model.DocumentID(req.ID), req.Name, req.OwnerEmail, req.Content)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.DocumentFromModel(doc))
}

// Get handles GET /api/documents/{id}
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, err := h.documentService.Get(r.Context(), model.DocumentID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DocumentFromModel(doc))
}

// List handles GET /api/documents?owner=email
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("owner query parameter is required"))
		return
	}

	docs, err := h.documentService.ListByOwner(r.Context(), owner)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	summaries := make([]response.Document, len(docs))
	for i, d := range docs {
		summaries[i] = response.DocumentSummaryFromModel(d)
	}

	response.JSON(w, http.StatusOK, summaries)
}

// Delete handles DELETE /api/documents/{id}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.documentService.Delete(r.Context(), model.DocumentID(id)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}
