package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docket/internal/domain"
)

// MockHistoryService is a mock implementation of service.HistoryService.
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) views(args mock.Arguments) ([]domain.ActivityRecordView, int, error) {
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ActivityRecordView), args.Int(1), args.Error(2)
}

func (m *MockHistoryService) MatterHistory(ctx context.Context, matterID uuid.UUID, offset, limit int) ([]domain.ActivityRecordView, int, error) {
	return m.views(m.Called(ctx, matterID, offset, limit))
}

func (m *MockHistoryService) DocumentHistory(ctx context.Context, documentID uuid.UUID, offset, limit int) ([]domain.ActivityRecordView, int, error) {
	return m.views(m.Called(ctx, documentID, offset, limit))
}

func (m *MockHistoryService) RevisionHistory(ctx context.Context, revisionID uuid.UUID, offset, limit int) ([]domain.ActivityRecordView, int, error) {
	return m.views(m.Called(ctx, revisionID, offset, limit))
}

func (m *MockHistoryService) TransferHistory(ctx context.Context, documentID uuid.UUID) ([]domain.ActivityRecordView, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityRecordView), args.Error(1)
}
