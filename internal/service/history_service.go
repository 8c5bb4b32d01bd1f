package service

import (
	"context"

	"github.com/google/uuid"

	"docket/internal/domain"
	"docket/internal/port"
)

// HistoryService reads audit trails.
type HistoryService interface {
	MatterHistory(ctx context.Context, matterID uuid.UUID, offset, limit int) ([]domain.ActivityRecordView, int, error)
	DocumentHistory(ctx context.Context, documentID uuid.UUID, offset, limit int) ([]domain.ActivityRecordView, int, error)
	RevisionHistory(ctx context.Context, revisionID uuid.UUID, offset, limit int) ([]domain.ActivityRecordView, int, error)
	// TransferHistory returns both halves of every transfer naming the document.
	TransferHistory(ctx context.Context, documentID uuid.UUID) ([]domain.ActivityRecordView, error)
}

type historyService struct {
	records   port.ActivityRecordRepository
	validator ResourceValidator
}

// NewHistoryService creates a new HistoryService implementation.
func NewHistoryService(records port.ActivityRecordRepository, validator ResourceValidator) HistoryService {
	return &historyService{records: records, validator: validator}
}

func (s *historyService) MatterHistory(ctx context.Context, matterID uuid.UUID, offset, limit int) ([]domain.ActivityRecordView, int, error) {
	if _, err := s.validator.ValidateMatterExists(ctx, matterID); err != nil {
		return nil, 0, err
	}
	return s.records.ListBySubject(ctx, domain.AuditMatter, matterID, offset, limit)
}

func (s *historyService) DocumentHistory(ctx context.Context, documentID uuid.UUID, offset, limit int) ([]domain.ActivityRecordView, int, error) {
	if _, err := s.validator.ValidateDocumentExists(ctx, documentID); err != nil {
		return nil, 0, err
	}
	return s.records.ListBySubject(ctx, domain.AuditDocument, documentID, offset, limit)
}

func (s *historyService) RevisionHistory(ctx context.Context, revisionID uuid.UUID, offset, limit int) ([]domain.ActivityRecordView, int, error) {
	if _, err := s.validator.ValidateRevisionExists(ctx, revisionID); err != nil {
		return nil, 0, err
	}
	return s.records.ListBySubject(ctx, domain.AuditRevision, revisionID, offset, limit)
}

func (s *historyService) TransferHistory(ctx context.Context, documentID uuid.UUID) ([]domain.ActivityRecordView, error) {
	if _, err := s.validator.ValidateDocumentExists(ctx, documentID); err != nil {
		return nil, err
	}
	return s.records.ListTransfers(ctx, documentID)
}
