package service

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docket/internal/domain"
	"docket/internal/port"
)

// firstRevisionNumber is the number given to a new document's initial revision.
const firstRevisionNumber = 1

// CreateDocumentInput is the DTO for creating a document.
type CreateDocumentInput struct {
	MatterID  uuid.UUID `json:"matter_id"`
	FileName  string    `json:"file_name"`
	Extension string    `json:"extension"`
}

// Validate checks the input fields.
func (in *CreateDocumentInput) Validate() error {
	in.FileName = strings.TrimSpace(in.FileName)
	in.Extension = strings.TrimSpace(in.Extension)
	return structError(validation.ValidateStruct(in,
		validation.Field(&in.MatterID, notNilUUID),
		validation.Field(&in.FileName,
			validation.Required,
			validation.RuneLength(1, maxFileNameLength),
			validation.Match(fileNamePattern).Error("file name cannot contain path separators"),
		),
		validation.Field(&in.Extension,
			validation.Required,
			validation.RuneLength(1, maxExtensionLength),
			validExtension,
		),
	))
}

// UpdateDocumentInput is the DTO for updating a document's mutable fields.
type UpdateDocumentInput struct {
	DocumentID uuid.UUID `json:"document_id"`
	FileName   string    `json:"file_name"`
}

// Validate checks the input fields.
func (in *UpdateDocumentInput) Validate() error {
	in.FileName = strings.TrimSpace(in.FileName)
	return structError(validation.ValidateStruct(in,
		validation.Field(&in.DocumentID, notNilUUID),
		validation.Field(&in.FileName,
			validation.Required,
			validation.RuneLength(1, maxFileNameLength),
			validation.Match(fileNamePattern).Error("file name cannot contain path separators"),
		),
	))
}

// UpdateRevisionInput identifies a revision through its owning matter and document.
type UpdateRevisionInput struct {
	MatterID   uuid.UUID `json:"matter_id"`
	DocumentID uuid.UUID `json:"document_id"`
	RevisionID uuid.UUID `json:"revision_id"`
}

// DocumentService defines the document lifecycle contract. Repeated
// transitions are not rejected; each call appends its own audit record.
type DocumentService interface {
	CreateDocument(ctx context.Context, actor *domain.User, input *CreateDocumentInput) (*domain.Document, error)
	SetCheckState(ctx context.Context, actor *domain.User, documentID uuid.UUID, checkedOut bool) (*domain.Document, error)
	UpdateDocument(ctx context.Context, actor *domain.User, input *UpdateDocumentInput) (*domain.Document, error)
	DeleteDocument(ctx context.Context, actor *domain.User, documentID uuid.UUID) (*domain.Document, error)
	ViewDocument(ctx context.Context, actor *domain.User, documentID uuid.UUID) (*domain.Document, error)
	GetDocument(ctx context.Context, documentID uuid.UUID) (*domain.Document, error)
	ListDocuments(ctx context.Context, matterID uuid.UUID, includeDeleted bool, offset, limit int) ([]domain.Document, int, error)

	AddRevision(ctx context.Context, actor *domain.User, documentID uuid.UUID) (*domain.Revision, error)
	UpdateRevision(ctx context.Context, actor *domain.User, input *UpdateRevisionInput) (*domain.Revision, error)
	DeleteRevision(ctx context.Context, actor *domain.User, revisionID uuid.UUID) (*domain.Revision, error)
	ListRevisions(ctx context.Context, documentID uuid.UUID) ([]domain.Revision, error)
}

type documentService struct {
	txm          port.TransactionManager
	documentRepo port.DocumentRepository
	revisionRepo port.RevisionRepository
	validator    ResourceValidator
	catalog      port.ActivityCatalog
	audit        AuditRecorder
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	txm port.TransactionManager,
	documentRepo port.DocumentRepository,
	revisionRepo port.RevisionRepository,
	validator ResourceValidator,
	catalog port.ActivityCatalog,
	audit AuditRecorder,
) DocumentService {
	return &documentService{
		txm:          txm,
		documentRepo: documentRepo,
		revisionRepo: revisionRepo,
		validator:    validator,
		catalog:      catalog,
		audit:        audit,
	}
}

func (s *documentService) CreateDocument(ctx context.Context, actor *domain.User, input *CreateDocumentInput) (*domain.Document, error) {
	var fields logrus.Fields
	if input != nil {
		fields = logrus.Fields{"matter_id": input.MatterID}
	}
	op := startOperation(ctx, "create_document", actor, fields)
	if err := validateActor(actor); err != nil {
		return nil, op.finish(err)
	}
	if input == nil {
		return nil, op.finish(domain.NewValidationError("input", "is required"))
	}
	if err := input.Validate(); err != nil {
		return nil, op.finish(err)
	}
	docCreated, err := s.catalog.Resolve(domain.FamilyDocument, domain.ActivityCreated)
	if err != nil {
		return nil, op.finish(err)
	}
	revCreated, err := s.catalog.Resolve(domain.FamilyRevision, domain.ActivityCreated)
	if err != nil {
		return nil, op.finish(err)
	}

	doc := &domain.Document{
		MatterID:     input.MatterID,
		FileName:     input.FileName,
		Extension:    input.Extension,
		IsCheckedOut: false,
	}
	err = s.txm.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.validator.ValidateMatterExists(ctx, input.MatterID); err != nil {
			return err
		}
		if err := s.documentRepo.Create(ctx, doc); err != nil {
			return err
		}
		rev := &domain.Revision{DocumentID: doc.ID, RevisionNumber: firstRevisionNumber}
		if err := s.revisionRepo.Create(ctx, rev); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, domain.AuditDocument, doc.ID, docCreated, actor); err != nil {
			return err
		}
		return s.audit.Record(ctx, domain.AuditRevision, rev.ID, revCreated, actor)
	})
	if err != nil {
		return nil, op.finish(err)
	}
	op.with("document_id", doc.ID)
	return doc, op.finish(nil)
}

func (s *documentService) SetCheckState(ctx context.Context, actor *domain.User, documentID uuid.UUID, checkedOut bool) (*domain.Document, error) {
	opName, name := "check_in_document", domain.ActivityCheckedIn
	if checkedOut {
		opName, name = "check_out_document", domain.ActivityCheckedOut
	}
	return s.transition(ctx, opName, actor, documentID, name, func(d *domain.Document) (bool, error) {
		d.IsCheckedOut = checkedOut
		return true, nil
	})
}

func (s *documentService) UpdateDocument(ctx context.Context, actor *domain.User, input *UpdateDocumentInput) (*domain.Document, error) {
	if input == nil {
		return nil, domain.NewValidationError("input", "is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.transition(ctx, "update_document", actor, input.DocumentID, domain.ActivitySaved, func(d *domain.Document) (bool, error) {
		d.FileName = input.FileName
		return true, nil
	})
}

func (s *documentService) DeleteDocument(ctx context.Context, actor *domain.User, documentID uuid.UUID) (*domain.Document, error) {
	return s.transition(ctx, "delete_document", actor, documentID, domain.ActivityDeleted, func(d *domain.Document) (bool, error) {
		d.IsDeleted = true
		return true, nil
	})
}

func (s *documentService) ViewDocument(ctx context.Context, actor *domain.User, documentID uuid.UUID) (*domain.Document, error) {
	return s.transition(ctx, "view_document", actor, documentID, domain.ActivityViewed, func(*domain.Document) (bool, error) {
		return false, nil
	})
}

func (s *documentService) GetDocument(ctx context.Context, documentID uuid.UUID) (*domain.Document, error) {
	return s.validator.ValidateDocumentExists(ctx, documentID)
}

func (s *documentService) ListDocuments(ctx context.Context, matterID uuid.UUID, includeDeleted bool, offset, limit int) ([]domain.Document, int, error) {
	if _, err := s.validator.ValidateMatterExists(ctx, matterID); err != nil {
		return nil, 0, err
	}
	return s.documentRepo.ListByMatter(ctx, matterID, includeDeleted, offset, limit)
}

// transition loads the document, applies mutate, saves it when mutate reports
// a change and records name, all in one transaction.
func (s *documentService) transition(
	ctx context.Context,
	opName string,
	actor *domain.User,
	documentID uuid.UUID,
	name domain.ActivityName,
	mutate func(d *domain.Document) (bool, error),
) (*domain.Document, error) {
	op := startOperation(ctx, opName, actor, logrus.Fields{"document_id": documentID})
	if err := validateActor(actor); err != nil {
		return nil, op.finish(err)
	}
	if err := s.validator.ValidateGuid("documentId", documentID); err != nil {
		return nil, op.finish(err)
	}
	activity, err := s.catalog.Resolve(domain.FamilyDocument, name)
	if err != nil {
		return nil, op.finish(err)
	}

	var doc *domain.Document
	err = s.txm.ExecTx(ctx, func(ctx context.Context) error {
		d, err := s.validator.ValidateDocumentExists(ctx, documentID)
		if err != nil {
			return err
		}
		changed, err := mutate(d)
		if err != nil {
			return err
		}
		if changed {
			if err := s.documentRepo.Update(ctx, d); err != nil {
				return err
			}
		}
		if err := s.audit.Record(ctx, domain.AuditDocument, d.ID, activity, actor); err != nil {
			return err
		}
		doc = d
		return nil
	})
	if err != nil {
		return nil, op.finish(err)
	}
	return doc, op.finish(nil)
}
