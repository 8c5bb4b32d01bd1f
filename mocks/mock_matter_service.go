package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docket/internal/domain"
	"docket/internal/service"
)

// MockMatterService is a mock implementation of service.MatterService.
type MockMatterService struct {
	mock.Mock
}

func (m *MockMatterService) matter(args mock.Arguments) (*domain.Matter, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Matter), args.Error(1)
}

func (m *MockMatterService) Create(ctx context.Context, actor *domain.User, input *service.CreateMatterInput) (*domain.Matter, error) {
	return m.matter(m.Called(ctx, actor, input))
}

func (m *MockMatterService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Matter, error) {
	return m.matter(m.Called(ctx, id))
}

func (m *MockMatterService) List(ctx context.Context, includeDeleted bool, offset, limit int) ([]domain.Matter, int, error) {
	args := m.Called(ctx, includeDeleted, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Matter), args.Int(1), args.Error(2)
}

func (m *MockMatterService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input *service.UpdateMatterInput) (*domain.Matter, error) {
	return m.matter(m.Called(ctx, actor, id, input))
}

func (m *MockMatterService) Archive(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Matter, error) {
	return m.matter(m.Called(ctx, actor, id))
}

func (m *MockMatterService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Matter, error) {
	return m.matter(m.Called(ctx, actor, id))
}

func (m *MockMatterService) Restore(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Matter, error) {
	return m.matter(m.Called(ctx, actor, id))
}
