package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docket/internal/domain"
	"docket/internal/service"
)

// MockTransferService is a mock implementation of service.TransferService.
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, input *service.TransferInput) (*service.TransferResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransferResult), args.Error(1)
}

// MockTransferReconciler is a mock implementation of service.TransferReconciler.
type MockTransferReconciler struct {
	mock.Mock
}

func (m *MockTransferReconciler) ListIncomplete(ctx context.Context, limit int) ([]domain.TransferMarker, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferMarker), args.Error(1)
}

func (m *MockTransferReconciler) Reconcile(ctx context.Context, limit int) (*service.ReconcileReport, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconcileReport), args.Error(1)
}

func (m *MockTransferReconciler) ReconcileMarker(ctx context.Context, markerID uuid.UUID) (*domain.TransferMarker, error) {
	args := m.Called(ctx, markerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferMarker), args.Error(1)
}
