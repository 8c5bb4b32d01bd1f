package service

import (
	"context"

	"github.com/google/uuid"
)

// WithParentOperation exposes withParentOperation to the service_test package.
func WithParentOperation(ctx context.Context, parentID uuid.UUID) context.Context {
	return withParentOperation(ctx, parentID)
}

// HasParentOperation reports whether ctx runs inside a parent operation.
func HasParentOperation(ctx context.Context) bool {
	_, ok := parentOperation(ctx)
	return ok
}
