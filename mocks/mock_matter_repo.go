package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docket/internal/domain"
)

// MockMatterRepo is a mock implementation of port.MatterRepository.
type MockMatterRepo struct {
	mock.Mock
}

func (m *MockMatterRepo) Create(ctx context.Context, matter *domain.Matter) error {
	args := m.Called(ctx, matter)
	return args.Error(0)
}

func (m *MockMatterRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Matter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Matter), args.Error(1)
}

func (m *MockMatterRepo) GetByDescription(ctx context.Context, description string) (*domain.Matter, error) {
	args := m.Called(ctx, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Matter), args.Error(1)
}

func (m *MockMatterRepo) List(ctx context.Context, includeDeleted bool, offset, limit int) ([]domain.Matter, int, error) {
	args := m.Called(ctx, includeDeleted, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Matter), args.Int(1), args.Error(2)
}

func (m *MockMatterRepo) Update(ctx context.Context, matter *domain.Matter) error {
	args := m.Called(ctx, matter)
	return args.Error(0)
}
