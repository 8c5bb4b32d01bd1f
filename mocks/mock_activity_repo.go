package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docket/internal/domain"
)

// MockActivityRepo is a mock implementation of port.ActivityRepository.
type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) List(ctx context.Context) ([]domain.Activity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityRepo) GetByFamilyAndName(ctx context.Context, family domain.ActivityFamily, name domain.ActivityName) (*domain.Activity, error) {
	args := m.Called(ctx, family, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}
