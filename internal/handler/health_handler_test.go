package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"docket/internal/handler"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	c, w := newContext(http.MethodGet, "/healthz", nil)
	handler.NewHealthHandler(fakePinger{}).Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodGet, "/readyz", nil)
	handler.NewHealthHandler(fakePinger{}).Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodGet, "/readyz", nil)
	handler.NewHealthHandler(fakePinger{err: errors.New("connection refused")}).Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
