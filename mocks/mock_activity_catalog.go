package mocks

import (
	"github.com/stretchr/testify/mock"

	"docket/internal/domain"
)

// MockActivityCatalog is a mock implementation of port.ActivityCatalog.
type MockActivityCatalog struct {
	mock.Mock
}

func (m *MockActivityCatalog) Resolve(family domain.ActivityFamily, name domain.ActivityName) (*domain.Activity, error) {
	args := m.Called(family, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}
