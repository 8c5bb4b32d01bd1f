package handler

import (
	"github.com/gin-gonic/gin"

	"docket/internal/service"
)

// RevisionHandler handles revision endpoints.
type RevisionHandler struct {
	documentService service.DocumentService
}

// NewRevisionHandler creates a new RevisionHandler.
func NewRevisionHandler(documentService service.DocumentService) *RevisionHandler {
	return &RevisionHandler{documentService: documentService}
}

// Add handles POST /api/v1/documents/:id/revisions
func (h *RevisionHandler) Add(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	rev, err := h.documentService.AddRevision(c.Request.Context(), actor, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rev)
}

// List handles GET /api/v1/documents/:id/revisions
func (h *RevisionHandler) List(c *gin.Context) {
	docID, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	revs, err := h.documentService.ListRevisions(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, revs)
}

// Update handles PUT /api/v1/matters/:id/documents/:documentId/revisions/:revisionId
func (h *RevisionHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	matterID, ok := parseIDParam(c, "id", "matter")
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "documentId", "document")
	if !ok {
		return
	}
	revID, ok := parseIDParam(c, "revisionId", "revision")
	if !ok {
		return
	}

	rev, err := h.documentService.UpdateRevision(c.Request.Context(), actor, &service.UpdateRevisionInput{
		MatterID:   matterID,
		DocumentID: docID,
		RevisionID: revID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rev)
}

// Delete handles DELETE /api/v1/revisions/:id
func (h *RevisionHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	revID, ok := parseIDParam(c, "id", "revision")
	if !ok {
		return
	}

	rev, err := h.documentService.DeleteRevision(c.Request.Context(), actor, revID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rev)
}
