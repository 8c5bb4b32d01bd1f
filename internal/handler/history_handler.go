package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"docket/internal/csvexport"
	"docket/internal/middleware"
	"docket/internal/service"
)

const exportPageSize = 100

// HistoryHandler serves audit trails.
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// Matter handles GET /api/v1/matters/:id/history
func (h *HistoryHandler) Matter(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "matter")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	views, total, err := h.historyService.MatterHistory(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, views, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Document handles GET /api/v1/documents/:id/history
func (h *HistoryHandler) Document(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	views, total, err := h.historyService.DocumentHistory(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, views, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Revision handles GET /api/v1/revisions/:id/history
func (h *HistoryHandler) Revision(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "revision")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	views, total, err := h.historyService.RevisionHistory(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, views, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Transfers handles GET /api/v1/documents/:id/transfers
func (h *HistoryHandler) Transfers(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	views, err := h.historyService.TransferHistory(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, views)
}

// ExportDocument handles GET /api/v1/documents/:id/history/export
// It streams the document's full audit trail as CSV.
func (h *HistoryHandler) ExportDocument(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	// the first page is fetched before any bytes are written so errors still map to JSON
	views, total, err := h.historyService.DocumentHistory(ctx, id, 0, exportPageSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename(id.String(), time.Now())+`"`)
	c.Status(http.StatusOK)
	_, _ = c.Writer.Write(csvexport.BOM)

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		logExportError(c, err)
		return
	}
	for offset := 0; ; {
		if err := w.WriteRecords(views); err != nil {
			logExportError(c, err)
			return
		}
		offset += len(views)
		if len(views) == 0 || offset >= total {
			break
		}
		views, _, err = h.historyService.DocumentHistory(ctx, id, offset, exportPageSize)
		if err != nil {
			logExportError(c, err)
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logExportError(c, err)
	}
}

func logExportError(c *gin.Context, err error) {
	requestID, _ := c.Get(middleware.ContextKeyRequestID)
	logrus.WithError(err).WithField("request_id", requestID).Error("history export aborted")
}
