package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docket/internal/config"
	"docket/internal/domain"
	"docket/internal/metrics"
	"docket/internal/port"
	"docket/internal/storage"
)

// TransferInput is the DTO for a cross-matter move or copy.
type TransferInput struct {
	SourceMatterID uuid.UUID
	TargetMatterID uuid.UUID
	DocumentID     uuid.UUID
	Operation      domain.TransferOp
	Actor          *domain.User
}

// TransferResult describes a committed transfer. Performed differs from
// Requested when a move of a document without revisions ran as a copy.
// MarkerID is nil when there was no file to relocate.
type TransferResult struct {
	OperationID      uuid.UUID         `json:"operation_id"`
	Requested        domain.TransferOp `json:"requested"`
	Performed        domain.TransferOp `json:"performed"`
	SourceDocumentID uuid.UUID         `json:"source_document_id"`
	Document         *domain.Document  `json:"document"`
	MarkerID         *uuid.UUID        `json:"marker_id,omitempty"`
	SourcePath       string            `json:"source_path,omitempty"`
	DestinationPath  string            `json:"destination_path,omitempty"`
}

// TransferService moves or copies documents between matters.
type TransferService interface {
	// Transfer holds the document's lock while it commits the database change
	// with its From/To audit records and a pending marker, then relocates the
	// file. A failed file step after commit returns *domain.TransferIncompleteError.
	Transfer(ctx context.Context, input *TransferInput) (*TransferResult, error)
}

type transferService struct {
	txm          port.TransactionManager
	documentRepo port.DocumentRepository
	revisionRepo port.RevisionRepository
	markerRepo   port.TransferMarkerRepository
	validator    ResourceValidator
	catalog      port.ActivityCatalog
	audit        AuditRecorder
	documents    DocumentService
	locker       port.DocumentLocker
	files        port.FileStore
	resolver     *storage.Resolver
	cfg          config.TransferConfig
}

// NewTransferService creates a new TransferService implementation.
func NewTransferService(
	txm port.TransactionManager,
	documentRepo port.DocumentRepository,
	revisionRepo port.RevisionRepository,
	markerRepo port.TransferMarkerRepository,
	validator ResourceValidator,
	catalog port.ActivityCatalog,
	audit AuditRecorder,
	documents DocumentService,
	locker port.DocumentLocker,
	files port.FileStore,
	resolver *storage.Resolver,
	cfg config.TransferConfig,
) TransferService {
	return &transferService{
		txm:          txm,
		documentRepo: documentRepo,
		revisionRepo: revisionRepo,
		markerRepo:   markerRepo,
		validator:    validator,
		catalog:      catalog,
		audit:        audit,
		documents:    documents,
		locker:       locker,
		files:        files,
		resolver:     resolver,
		cfg:          cfg,
	}
}

// transferPlan is everything decided before the transaction opens.
type transferPlan struct {
	opID      uuid.UUID
	requested domain.TransferOp
	performed domain.TransferOp
	source    *domain.Matter
	target    *domain.Matter
	doc       *domain.Document
	latest    *domain.Revision
	activity  *domain.Activity
	actor     *domain.User
	srcPath   string
}

func (s *transferService) Transfer(ctx context.Context, input *TransferInput) (*TransferResult, error) {
	started := time.Now()
	if input == nil {
		return nil, domain.NewValidationError("input", "is required")
	}
	opID := uuid.New()
	log := logrus.WithFields(logrus.Fields{
		"op_id":            opID,
		"operation":        "transfer_" + string(input.Operation),
		"document_id":      input.DocumentID,
		"source_matter_id": input.SourceMatterID,
		"target_matter_id": input.TargetMatterID,
	})
	if input.Actor != nil {
		log = log.WithField("actor_id", input.Actor.ID)
	}
	log.Debug("transferService.Transfer: started")

	result, err := s.transfer(ctx, opID, input, log)

	outcome := metrics.OutcomeOK
	log = log.WithField("elapsed", time.Since(started))
	switch {
	case err == nil:
		if result.Performed != result.Requested {
			outcome = metrics.OutcomeDegraded
		}
		log.WithField("performed", result.Performed).Info("transferService.Transfer: ok")
	case errors.Is(err, domain.ErrTransferIncomplete):
		outcome = metrics.OutcomeIncomplete
		log.WithError(err).Error("transferService.Transfer: committed but file step failed")
	case errors.Is(err, domain.ErrDocumentLocked):
		outcome = metrics.OutcomeLocked
		log.WithError(err).Warn("transferService.Transfer: document locked")
	case isExpected(err):
		outcome = metrics.OutcomeFailed
		log.WithError(err).Warn("transferService.Transfer: rejected")
	default:
		outcome = metrics.OutcomeFailed
		log.WithError(err).Error("transferService.Transfer: failed")
	}
	metrics.ObserveTransfer(string(input.Operation), outcome, started)
	return result, err
}

func (s *transferService) transfer(ctx context.Context, opID uuid.UUID, input *TransferInput, log *logrus.Entry) (*TransferResult, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	release, err := s.locker.TryLock(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}
	defer release()

	plan, err := s.plan(ctx, opID, input)
	if err != nil {
		return nil, err
	}
	if plan.performed != plan.requested {
		log.Info("transferService.Transfer: document has no revisions, move runs as copy")
	}

	var (
		resultDoc *domain.Document
		marker    *domain.TransferMarker
	)
	err = s.txm.ExecTx(withParentOperation(ctx, opID), func(ctx context.Context) error {
		var err error
		switch plan.performed {
		case domain.TransferMove:
			resultDoc, marker, err = s.commitMove(ctx, plan)
		default:
			resultDoc, marker, err = s.commitCopy(ctx, plan)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &TransferResult{
		OperationID:      opID,
		Requested:        plan.requested,
		Performed:        plan.performed,
		SourceDocumentID: plan.doc.ID,
		Document:         resultDoc,
	}
	if marker == nil {
		return result, nil
	}
	result.MarkerID = &marker.ID
	result.SourcePath = marker.SourcePath
	result.DestinationPath = marker.DestinationPath

	if err := s.relocate(ctx, marker); err != nil {
		return result, s.markIncomplete(ctx, marker, err)
	}
	if err := s.markerRepo.UpdateStatus(context.WithoutCancel(ctx), marker.ID, domain.TransferStatusCompleted, ""); err != nil {
		// the file is in place; the reconciler will see the pending marker and complete it
		log.WithError(err).WithField("marker_id", marker.ID).Warn("transferService.Transfer: marking transfer completed failed")
	}
	return result, nil
}

func (s *transferService) validateInput(input *TransferInput) error {
	if err := validateActor(input.Actor); err != nil {
		return err
	}
	if err := s.validator.ValidateGuid("sourceMatterId", input.SourceMatterID); err != nil {
		return err
	}
	if err := s.validator.ValidateGuid("targetMatterId", input.TargetMatterID); err != nil {
		return err
	}
	if err := s.validator.ValidateGuid("documentId", input.DocumentID); err != nil {
		return err
	}
	if !domain.ValidTransferOps[input.Operation] {
		return domain.NewValidationError("operation", fmt.Sprintf("unknown operation %q", input.Operation))
	}
	if input.Operation == domain.TransferMove && input.SourceMatterID == input.TargetMatterID {
		return domain.ErrSameMatter
	}
	return nil
}

// plan validates the participants and picks the revision whose file is relocated.
func (s *transferService) plan(ctx context.Context, opID uuid.UUID, input *TransferInput) (*transferPlan, error) {
	source, err := s.validator.ValidateMatterExists(ctx, input.SourceMatterID)
	if err != nil {
		return nil, err
	}
	target, err := s.validator.ValidateMatterExists(ctx, input.TargetMatterID)
	if err != nil {
		return nil, err
	}
	doc, err := s.validator.ValidateDocumentExists(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.MatterID != source.ID {
		return nil, domain.ErrDocumentNotInMatter
	}

	revs, err := s.revisionRepo.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	p := &transferPlan{
		opID:      opID,
		requested: input.Operation,
		performed: input.Operation,
		source:    source,
		target:    target,
		doc:       doc,
		latest:    domain.LatestRevision(revs),
		actor:     input.Actor,
	}
	if p.latest == nil {
		if input.Operation != domain.TransferMove {
			return nil, domain.ErrNoRevisions
		}
		p.performed = domain.TransferCopy
	}

	p.activity, err = s.catalog.Resolve(domain.FamilyMatterDocument, p.performed.Activity())
	if err != nil {
		return nil, err
	}
	if p.latest != nil {
		p.srcPath, err = s.resolver.Resolve(source.ID, doc.ID, p.latest.RevisionNumber, doc.Extension)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (s *transferService) commitMove(ctx context.Context, p *transferPlan) (*domain.Document, *domain.TransferMarker, error) {
	if err := s.documentRepo.UpdateMatter(ctx, p.doc.ID, p.target.ID); err != nil {
		return nil, nil, err
	}
	if err := s.audit.RecordTransfer(ctx, domain.DirectionFrom, p.source.ID, p.doc.ID, p.activity, p.actor); err != nil {
		return nil, nil, err
	}
	if err := s.audit.RecordTransfer(ctx, domain.DirectionTo, p.target.ID, p.doc.ID, p.activity, p.actor); err != nil {
		return nil, nil, err
	}

	dst, err := s.resolver.Resolve(p.target.ID, p.doc.ID, p.latest.RevisionNumber, p.doc.Extension)
	if err != nil {
		return nil, nil, err
	}
	marker, err := s.stage(ctx, p, p.doc.ID, dst)
	if err != nil {
		return nil, nil, err
	}

	moved := *p.doc
	moved.MatterID = p.target.ID
	return &moved, marker, nil
}

func (s *transferService) commitCopy(ctx context.Context, p *transferPlan) (*domain.Document, *domain.TransferMarker, error) {
	created, err := s.documents.CreateDocument(ctx, p.actor, &CreateDocumentInput{
		MatterID:  p.target.ID,
		FileName:  p.doc.FileName,
		Extension: p.doc.Extension,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := s.audit.RecordTransfer(ctx, domain.DirectionFrom, p.source.ID, p.doc.ID, p.activity, p.actor); err != nil {
		return nil, nil, err
	}
	if err := s.audit.RecordTransfer(ctx, domain.DirectionTo, p.target.ID, created.ID, p.activity, p.actor); err != nil {
		return nil, nil, err
	}
	if p.latest == nil {
		return created, nil, nil
	}

	dst, err := s.resolver.Resolve(p.target.ID, created.ID, s.copyRevisionNumber(p.latest), created.Extension)
	if err != nil {
		return nil, nil, err
	}
	marker, err := s.stage(ctx, p, created.ID, dst)
	if err != nil {
		return nil, nil, err
	}
	return created, marker, nil
}

// copyRevisionNumber picks the numeral in a copied file's name.
func (s *transferService) copyRevisionNumber(latest *domain.Revision) int {
	if s.cfg.CopyRevisionNaming == config.CopyRevisionSourceNext {
		return latest.RevisionNumber + 1
	}
	return firstRevisionNumber
}

// stage records the pending file operation in the open transaction.
func (s *transferService) stage(ctx context.Context, p *transferPlan, targetDocID uuid.UUID, dst string) (*domain.TransferMarker, error) {
	marker := &domain.TransferMarker{
		OperationID:      p.opID,
		Operation:        p.performed,
		DocumentID:       p.doc.ID,
		TargetDocumentID: targetDocID,
		SourceMatterID:   p.source.ID,
		TargetMatterID:   p.target.ID,
		SourcePath:       p.srcPath,
		DestinationPath:  dst,
		Status:           domain.TransferStatusPending,
	}
	if err := s.markerRepo.Create(ctx, marker); err != nil {
		return nil, err
	}
	return marker, nil
}

func (s *transferService) relocate(ctx context.Context, m *domain.TransferMarker) error {
	if err := s.files.EnsureDirectory(ctx, m.TargetMatterID); err != nil {
		return err
	}
	if m.Operation == domain.TransferMove {
		return s.files.Move(ctx, m.SourcePath, m.DestinationPath)
	}
	return s.files.Copy(ctx, m.SourcePath, m.DestinationPath)
}

func (s *transferService) markIncomplete(ctx context.Context, m *domain.TransferMarker, cause error) error {
	if err := s.markerRepo.UpdateStatus(context.WithoutCancel(ctx), m.ID, domain.TransferStatusIncomplete, cause.Error()); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"op_id":     m.OperationID,
			"marker_id": m.ID,
		}).Error("transferService.Transfer: recording incomplete marker failed")
	}
	return &domain.TransferIncompleteError{
		MarkerID:    m.ID,
		OperationID: m.OperationID,
		Operation:   m.Operation,
		DocumentID:  m.DocumentID,
		Path:        m.DestinationPath,
		Err:         cause,
	}
}
