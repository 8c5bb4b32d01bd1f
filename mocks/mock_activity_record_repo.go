package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docket/internal/domain"
)

// MockActivityRecordRepo is a mock implementation of port.ActivityRecordRepository.
type MockActivityRecordRepo struct {
	mock.Mock
}

func (m *MockActivityRecordRepo) AttachExisting(ctx context.Context, activity *domain.Activity, user *domain.User) error {
	args := m.Called(ctx, activity, user)
	return args.Error(0)
}

func (m *MockActivityRecordRepo) Exists(ctx context.Context, kind domain.AuditKind, subjectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, subjectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockActivityRecordRepo) Create(ctx context.Context, rec *domain.ActivityRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockActivityRecordRepo) ListBySubject(ctx context.Context, kind domain.AuditKind, subjectID uuid.UUID, offset, limit int) ([]domain.ActivityRecordView, int, error) {
	args := m.Called(ctx, kind, subjectID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ActivityRecordView), args.Int(1), args.Error(2)
}

func (m *MockActivityRecordRepo) ListTransfers(ctx context.Context, documentID uuid.UUID) ([]domain.ActivityRecordView, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityRecordView), args.Error(1)
}
