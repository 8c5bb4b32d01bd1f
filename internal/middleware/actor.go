package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docket/internal/domain"
	"docket/internal/service"
)

const (
	// HeaderActorID names the user performing the request.
	HeaderActorID = "X-Actor-ID"
	// ContextKeyActor is the gin context key holding the resolved *domain.User.
	ContextKeyActor = "actor"
)

// ErrNoActor is returned by GetActor when the Actor middleware did not run.
var ErrNoActor = errors.New("no actor in request context")

// Actor resolves the X-Actor-ID header to a persisted user. It identifies who
// the audit trail is attributed to; it does not authenticate.
func Actor(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(HeaderActorID))
		if err != nil || id == uuid.Nil {
			abortActor(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid "+HeaderActorID+" header")
			return
		}

		user, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				abortActor(c, http.StatusUnauthorized, "UNKNOWN_ACTOR", "actor does not exist")
				return
			}
			requestID, _ := c.Get(ContextKeyRequestID)
			logrus.WithError(err).WithField("request_id", requestID).Error("middleware.Actor: loading actor failed")
			abortActor(c, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
			return
		}

		c.Set(ContextKeyActor, user)
		c.Next()
	}
}

// GetActor extracts the actor from the Gin context.
func GetActor(c *gin.Context) (*domain.User, error) {
	val, exists := c.Get(ContextKeyActor)
	if !exists {
		return nil, ErrNoActor
	}
	user, ok := val.(*domain.User)
	if !ok || user == nil {
		return nil, ErrNoActor
	}
	return user, nil
}

func abortActor(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": msg},
	})
}
