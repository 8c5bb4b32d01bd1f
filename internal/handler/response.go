package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docket/internal/domain"
	"docket/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var ve *domain.ValidationError
	var incomplete *domain.TransferIncompleteError
	switch {
	case errors.As(err, &incomplete):
		return http.StatusBadGateway, "TRANSFER_INCOMPLETE",
			fmt.Sprintf("transfer committed but the file step failed; reconcile marker %s", incomplete.MarkerID)
	case errors.Is(err, domain.ErrDocumentLocked):
		return http.StatusConflict, "DOCUMENT_LOCKED", "document is locked by another operation"
	case errors.As(err, &ve):
		return http.StatusBadRequest, "VALIDATION_ERROR", ve.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", "validation failed"
	case errors.Is(err, domain.ErrMatterNotFound):
		return http.StatusNotFound, "MATTER_NOT_FOUND", "matter not found"
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found"
	case errors.Is(err, domain.ErrRevisionNotFound):
		return http.StatusNotFound, "REVISION_NOT_FOUND", "revision not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "USER_NOT_FOUND", "user not found"
	case errors.Is(err, domain.ErrMarkerNotFound):
		return http.StatusNotFound, "MARKER_NOT_FOUND", "transfer marker not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrDuplicateMatter):
		return http.StatusConflict, "DUPLICATE_MATTER", "a matter with this description already exists"
	case errors.Is(err, domain.ErrNoRevisions):
		return http.StatusUnprocessableEntity, "NO_REVISIONS", "document has no revisions to copy"
	case errors.Is(err, domain.ErrDocumentNotInMatter):
		return http.StatusUnprocessableEntity, "DOCUMENT_NOT_IN_MATTER", "document does not belong to the given matter"
	case errors.Is(err, domain.ErrSameMatter):
		return http.StatusUnprocessableEntity, "SAME_MATTER", "source and target matter must differ for a move"
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusInternalServerError, "PERSISTENCE_ERROR", "saving changes failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		logrus.WithError(err).WithField("request_id", requestID).Error("internal error")
	}
	RespondError(c, status, code, msg)
}

// requireActor returns the request's actor. Returns false if it is missing
// (error response already written).
func requireActor(c *gin.Context) (*domain.User, bool) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing actor context")
		return nil, false
	}
	return actor, true
}

// parseIDParam parses a uuid path parameter. Returns false if it is invalid
// (error response already written).
func parseIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

func parseIncludeDeleted(c *gin.Context) bool {
	v, _ := strconv.ParseBool(c.DefaultQuery("include_deleted", "false"))
	return v
}
