package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docket/internal/domain"
	"docket/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) document(args mock.Arguments) (*domain.Document, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) revision(args mock.Arguments) (*domain.Revision, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Revision), args.Error(1)
}

func (m *MockDocumentService) CreateDocument(ctx context.Context, actor *domain.User, input *service.CreateDocumentInput) (*domain.Document, error) {
	return m.document(m.Called(ctx, actor, input))
}

func (m *MockDocumentService) SetCheckState(ctx context.Context, actor *domain.User, documentID uuid.UUID, checkedOut bool) (*domain.Document, error) {
	return m.document(m.Called(ctx, actor, documentID, checkedOut))
}

func (m *MockDocumentService) UpdateDocument(ctx context.Context, actor *domain.User, input *service.UpdateDocumentInput) (*domain.Document, error) {
	return m.document(m.Called(ctx, actor, input))
}

func (m *MockDocumentService) DeleteDocument(ctx context.Context, actor *domain.User, documentID uuid.UUID) (*domain.Document, error) {
	return m.document(m.Called(ctx, actor, documentID))
}

func (m *MockDocumentService) ViewDocument(ctx context.Context, actor *domain.User, documentID uuid.UUID) (*domain.Document, error) {
	return m.document(m.Called(ctx, actor, documentID))
}

func (m *MockDocumentService) GetDocument(ctx context.Context, documentID uuid.UUID) (*domain.Document, error) {
	return m.document(m.Called(ctx, documentID))
}

func (m *MockDocumentService) ListDocuments(ctx context.Context, matterID uuid.UUID, includeDeleted bool, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, matterID, includeDeleted, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentService) AddRevision(ctx context.Context, actor *domain.User, documentID uuid.UUID) (*domain.Revision, error) {
	return m.revision(m.Called(ctx, actor, documentID))
}

func (m *MockDocumentService) UpdateRevision(ctx context.Context, actor *domain.User, input *service.UpdateRevisionInput) (*domain.Revision, error) {
	return m.revision(m.Called(ctx, actor, input))
}

func (m *MockDocumentService) DeleteRevision(ctx context.Context, actor *domain.User, revisionID uuid.UUID) (*domain.Revision, error) {
	return m.revision(m.Called(ctx, actor, revisionID))
}

func (m *MockDocumentService) ListRevisions(ctx context.Context, documentID uuid.UUID) ([]domain.Revision, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Revision), args.Error(1)
}
