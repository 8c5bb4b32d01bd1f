package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docket/internal/domain"
	"docket/internal/service"
)

type (
	matterTransition   func(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Matter, error)
	documentTransition func(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Document, error)
)

// DocumentHandler handles document lifecycle endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Create handles POST /api/v1/matters/:id/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	matterID, ok := parseIDParam(c, "id", "matter")
	if !ok {
		return
	}

	var req struct {
		FileName  string `json:"file_name" binding:"required"`
		Extension string `json:"extension" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file_name and extension are required")
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), actor, &service.CreateDocumentInput{
		MatterID:  matterID,
		FileName:  req.FileName,
		Extension: req.Extension,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// List handles GET /api/v1/matters/:id/documents
func (h *DocumentHandler) List(c *gin.Context) {
	matterID, ok := parseIDParam(c, "id", "matter")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	docs, total, err := h.documentService.ListDocuments(c.Request.Context(), matterID, parseIncludeDeleted(c), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/documents/:id
func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Update handles PUT /api/v1/documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	var req struct {
		FileName string `json:"file_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file_name is required")
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), actor, &service.UpdateDocumentInput{
		DocumentID: id,
		FileName:   req.FileName,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Delete handles DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	h.transition(c, h.documentService.DeleteDocument)
}

// CheckOut handles POST /api/v1/documents/:id/checkout
func (h *DocumentHandler) CheckOut(c *gin.Context) {
	h.transition(c, func(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Document, error) {
		return h.documentService.SetCheckState(ctx, actor, id, true)
	})
}

// CheckIn handles POST /api/v1/documents/:id/checkin
func (h *DocumentHandler) CheckIn(c *gin.Context) {
	h.transition(c, func(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Document, error) {
		return h.documentService.SetCheckState(ctx, actor, id, false)
	})
}

// View handles POST /api/v1/documents/:id/view
func (h *DocumentHandler) View(c *gin.Context) {
	h.transition(c, h.documentService.ViewDocument)
}

func (h *DocumentHandler) transition(c *gin.Context, fn documentTransition) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	doc, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}
