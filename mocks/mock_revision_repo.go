package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docket/internal/domain"
)

// MockRevisionRepo is a mock implementation of port.RevisionRepository.
type MockRevisionRepo struct {
	mock.Mock
}

func (m *MockRevisionRepo) Create(ctx context.Context, rev *domain.Revision) error {
	args := m.Called(ctx, rev)
	return args.Error(0)
}

func (m *MockRevisionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Revision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Revision), args.Error(1)
}

func (m *MockRevisionRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Revision, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Revision), args.Error(1)
}

func (m *MockRevisionRepo) NextRevisionNumber(ctx context.Context, documentID uuid.UUID) (int, error) {
	args := m.Called(ctx, documentID)
	return args.Int(0), args.Error(1)
}

func (m *MockRevisionRepo) Update(ctx context.Context, rev *domain.Revision) error {
	args := m.Called(ctx, rev)
	return args.Error(0)
}
