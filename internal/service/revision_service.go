package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docket/internal/domain"
)

func (s *documentService) AddRevision(ctx context.Context, actor *domain.User, documentID uuid.UUID) (*domain.Revision, error) {
	op := startOperation(ctx, "add_revision", actor, logrus.Fields{"document_id": documentID})
	if err := validateActor(actor); err != nil {
		return nil, op.finish(err)
	}
	if err := s.validator.ValidateGuid("documentId", documentID); err != nil {
		return nil, op.finish(err)
	}
	activity, err := s.catalog.Resolve(domain.FamilyRevision, domain.ActivityCreated)
	if err != nil {
		return nil, op.finish(err)
	}

	var rev *domain.Revision
	err = s.txm.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.validator.ValidateDocumentExists(ctx, documentID); err != nil {
			return err
		}
		next, err := s.revisionRepo.NextRevisionNumber(ctx, documentID)
		if err != nil {
			return err
		}
		r := &domain.Revision{DocumentID: documentID, RevisionNumber: next}
		if err := s.revisionRepo.Create(ctx, r); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, domain.AuditRevision, r.ID, activity, actor); err != nil {
			return err
		}
		rev = r
		return nil
	})
	if err != nil {
		return nil, op.finish(err)
	}
	op.with("revision_id", rev.ID)
	return rev, op.finish(nil)
}

func (s *documentService) UpdateRevision(ctx context.Context, actor *domain.User, input *UpdateRevisionInput) (*domain.Revision, error) {
	if input == nil {
		return nil, domain.NewValidationError("input", "is required")
	}
	op := startOperation(ctx, "update_revision", actor, logrus.Fields{
		"matter_id":   input.MatterID,
		"document_id": input.DocumentID,
		"revision_id": input.RevisionID,
	})
	if err := validateActor(actor); err != nil {
		return nil, op.finish(err)
	}
	activity, err := s.catalog.Resolve(domain.FamilyRevision, domain.ActivitySaved)
	if err != nil {
		return nil, op.finish(err)
	}

	var rev *domain.Revision
	err = s.txm.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.validator.ValidateMatterExists(ctx, input.MatterID); err != nil {
			return err
		}
		doc, err := s.validator.ValidateDocumentExists(ctx, input.DocumentID)
		if err != nil {
			return err
		}
		if doc.MatterID != input.MatterID {
			return domain.ErrDocumentNotInMatter
		}
		r, err := s.validator.ValidateRevisionExists(ctx, input.RevisionID)
		if err != nil {
			return err
		}
		if r.DocumentID != doc.ID {
			return domain.NewValidationError("revisionId", "revision does not belong to the document")
		}
		if err := s.revisionRepo.Update(ctx, r); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, domain.AuditRevision, r.ID, activity, actor); err != nil {
			return err
		}
		rev = r
		return nil
	})
	if err != nil {
		return nil, op.finish(err)
	}
	return rev, op.finish(nil)
}

func (s *documentService) DeleteRevision(ctx context.Context, actor *domain.User, revisionID uuid.UUID) (*domain.Revision, error) {
	op := startOperation(ctx, "delete_revision", actor, logrus.Fields{"revision_id": revisionID})
	if err := validateActor(actor); err != nil {
		return nil, op.finish(err)
	}
	if err := s.validator.ValidateGuid("revisionId", revisionID); err != nil {
		return nil, op.finish(err)
	}
	activity, err := s.catalog.Resolve(domain.FamilyRevision, domain.ActivityDeleted)
	if err != nil {
		return nil, op.finish(err)
	}

	var rev *domain.Revision
	err = s.txm.ExecTx(ctx, func(ctx context.Context) error {
		r, err := s.validator.ValidateRevisionExists(ctx, revisionID)
		if err != nil {
			return err
		}
		r.IsDeleted = true
		if err := s.revisionRepo.Update(ctx, r); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, domain.AuditRevision, r.ID, activity, actor); err != nil {
			return err
		}
		rev = r
		return nil
	})
	if err != nil {
		return nil, op.finish(err)
	}
	return rev, op.finish(nil)
}

func (s *documentService) ListRevisions(ctx context.Context, documentID uuid.UUID) ([]domain.Revision, error) {
	if _, err := s.validator.ValidateDocumentExists(ctx, documentID); err != nil {
		return nil, err
	}
	return s.revisionRepo.ListByDocument(ctx, documentID)
}
