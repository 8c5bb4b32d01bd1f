package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docket/internal/domain"
)

// MockTransferMarkerRepo is a mock implementation of port.TransferMarkerRepository.
type MockTransferMarkerRepo struct {
	mock.Mock
}

func (m *MockTransferMarkerRepo) Create(ctx context.Context, marker *domain.TransferMarker) error {
	args := m.Called(ctx, marker)
	return args.Error(0)
}

func (m *MockTransferMarkerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TransferMarker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferMarker), args.Error(1)
}

func (m *MockTransferMarkerRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransferStatus, lastErr string) error {
	args := m.Called(ctx, id, status, lastErr)
	return args.Error(0)
}

func (m *MockTransferMarkerRepo) ListByStatus(ctx context.Context, status domain.TransferStatus, olderThan time.Time, limit int) ([]domain.TransferMarker, error) {
	args := m.Called(ctx, status, olderThan, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferMarker), args.Error(1)
}
