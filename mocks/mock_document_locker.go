package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docket/internal/port"
)

// MockDocumentLocker is a mock implementation of port.DocumentLocker.
type MockDocumentLocker struct {
	mock.Mock
	Released int
}

func (m *MockDocumentLocker) TryLock(ctx context.Context, documentID uuid.UUID) (port.ReleaseFunc, error) {
	args := m.Called(ctx, documentID)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() { m.Released++ }, nil
}
