package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docket/internal/handler"
	"docket/internal/middleware"
	"docket/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Matter   *handler.MatterHandler
	Document *handler.DocumentHandler
	Revision *handler.RevisionHandler
	Transfer *handler.TransferHandler
	History  *handler.HistoryHandler
	User     *handler.UserHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(userSvc service.UserService, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks and metrics
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	// Users are created before any actor exists
	users := v1.Group("/users")
	users.POST("", h.User.Create)
	users.GET("", h.User.List)
	users.GET("/:id", h.User.GetByID)

	// Everything else is attributed to the X-Actor-ID user
	acting := v1.Group("")
	acting.Use(middleware.Actor(userSvc))

	matters := acting.Group("/matters")
	matters.POST("", h.Matter.Create)
	matters.GET("", h.Matter.List)
	matters.GET("/:id", h.Matter.GetByID)
	matters.PUT("/:id", h.Matter.Update)
	matters.DELETE("/:id", h.Matter.Delete)
	matters.POST("/:id/archive", h.Matter.Archive)
	matters.POST("/:id/restore", h.Matter.Restore)
	matters.GET("/:id/history", h.History.Matter)
	matters.POST("/:id/documents", h.Document.Create)
	matters.GET("/:id/documents", h.Document.List)
	matters.PUT("/:id/documents/:documentId/revisions/:revisionId", h.Revision.Update)

	documents := acting.Group("/documents")
	documents.GET("/:id", h.Document.GetByID)
	documents.PUT("/:id", h.Document.Update)
	documents.DELETE("/:id", h.Document.Delete)
	documents.POST("/:id/checkout", h.Document.CheckOut)
	documents.POST("/:id/checkin", h.Document.CheckIn)
	documents.POST("/:id/view", h.Document.View)
	documents.GET("/:id/history", h.History.Document)
	documents.GET("/:id/history/export", h.History.ExportDocument)
	documents.GET("/:id/transfers", h.History.Transfers)
	documents.POST("/:id/revisions", h.Revision.Add)
	documents.GET("/:id/revisions", h.Revision.List)

	revisions := acting.Group("/revisions")
	revisions.DELETE("/:id", h.Revision.Delete)
	revisions.GET("/:id/history", h.History.Revision)

	transfers := acting.Group("/transfers")
	transfers.POST("", h.Transfer.Transfer)
	transfers.GET("/incomplete", h.Transfer.ListIncomplete)
	transfers.POST("/reconcile", h.Transfer.Reconcile)
	transfers.POST("/markers/:id/reconcile", h.Transfer.ReconcileMarker)

	return r
}
