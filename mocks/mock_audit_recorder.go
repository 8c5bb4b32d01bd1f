package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docket/internal/domain"
)

// MockAuditRecorder is a mock implementation of service.AuditRecorder.
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, kind domain.AuditKind, subjectID uuid.UUID, activity *domain.Activity, actor *domain.User) error {
	args := m.Called(ctx, kind, subjectID, activity, actor)
	return args.Error(0)
}

func (m *MockAuditRecorder) RecordTransfer(ctx context.Context, direction domain.TransferDirection, matterID, documentID uuid.UUID, activity *domain.Activity, actor *domain.User) error {
	args := m.Called(ctx, direction, matterID, documentID, activity, actor)
	return args.Error(0)
}
