package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docket/internal/service"
)

// MatterHandler handles matter lifecycle endpoints.
type MatterHandler struct {
	matterService service.MatterService
}

// NewMatterHandler creates a new MatterHandler.
func NewMatterHandler(matterService service.MatterService) *MatterHandler {
	return &MatterHandler{matterService: matterService}
}

type matterRequest struct {
	Description string `json:"description" binding:"required"`
}

// Create handles POST /api/v1/matters
func (h *MatterHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req matterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "description is required")
		return
	}

	matter, err := h.matterService.Create(c.Request.Context(), actor, &service.CreateMatterInput{
		Description: req.Description,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, matter)
}

// List handles GET /api/v1/matters
func (h *MatterHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	matters, total, err := h.matterService.List(c.Request.Context(), parseIncludeDeleted(c), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, matters, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/matters/:id
func (h *MatterHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "matter")
	if !ok {
		return
	}

	matter, err := h.matterService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, matter)
}

// Update handles PUT /api/v1/matters/:id
func (h *MatterHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "matter")
	if !ok {
		return
	}

	var req matterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "description is required")
		return
	}

	matter, err := h.matterService.Update(c.Request.Context(), actor, id, &service.UpdateMatterInput{
		Description: req.Description,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, matter)
}

// Archive handles POST /api/v1/matters/:id/archive
func (h *MatterHandler) Archive(c *gin.Context) {
	h.transition(c, h.matterService.Archive)
}

// Restore handles POST /api/v1/matters/:id/restore
func (h *MatterHandler) Restore(c *gin.Context) {
	h.transition(c, h.matterService.Restore)
}

// Delete handles DELETE /api/v1/matters/:id
func (h *MatterHandler) Delete(c *gin.Context) {
	h.transition(c, h.matterService.Delete)
}

func (h *MatterHandler) transition(c *gin.Context, fn matterTransition) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "matter")
	if !ok {
		return
	}

	matter, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, matter)
}
