package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docket/internal/domain"
	"docket/internal/service"
)

const defaultReconcileLimit = 50

// TransferHandler handles cross-matter move/copy and reconciliation endpoints.
type TransferHandler struct {
	transferService service.TransferService
	reconciler      service.TransferReconciler
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferService service.TransferService, reconciler service.TransferReconciler) *TransferHandler {
	return &TransferHandler{transferService: transferService, reconciler: reconciler}
}

// Transfer handles POST /api/v1/transfers
func (h *TransferHandler) Transfer(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		SourceMatterID uuid.UUID `json:"source_matter_id" binding:"required"`
		TargetMatterID uuid.UUID `json:"target_matter_id" binding:"required"`
		DocumentID     uuid.UUID `json:"document_id" binding:"required"`
		Operation      string    `json:"operation" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST",
			"source_matter_id, target_matter_id, document_id and operation are required")
		return
	}

	result, err := h.transferService.Transfer(c.Request.Context(), &service.TransferInput{
		SourceMatterID: req.SourceMatterID,
		TargetMatterID: req.TargetMatterID,
		DocumentID:     req.DocumentID,
		Operation:      domain.TransferOp(req.Operation),
		Actor:          actor,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTransferIncomplete) && result != nil {
			// the database half is committed, so the result is returned with the error
			status, code, msg := MapDomainError(err)
			c.JSON(status, APIResponse{
				Success: false,
				Data:    result,
				Error:   &APIError{Code: code, Message: msg},
			})
			return
		}
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ListIncomplete handles GET /api/v1/transfers/incomplete
func (h *TransferHandler) ListIncomplete(c *gin.Context) {
	markers, err := h.reconciler.ListIncomplete(c.Request.Context(), parseLimit(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, markers)
}

// Reconcile handles POST /api/v1/transfers/reconcile
func (h *TransferHandler) Reconcile(c *gin.Context) {
	report, err := h.reconciler.Reconcile(c.Request.Context(), parseLimit(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// ReconcileMarker handles POST /api/v1/transfers/markers/:id/reconcile
func (h *TransferHandler) ReconcileMarker(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "marker")
	if !ok {
		return
	}

	marker, err := h.reconciler.ReconcileMarker(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, marker)
}

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultReconcileLimit)))
	if err != nil || limit <= 0 || limit > 500 {
		return defaultReconcileLimit
	}
	return limit
}
