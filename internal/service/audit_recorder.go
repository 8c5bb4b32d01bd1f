package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docket/internal/domain"
	"docket/internal/port"
)

// AuditRecorder writes immutable activity-user records. Callers run it inside
// the same ExecTx as the mutation it describes.
type AuditRecorder interface {
	// Record writes one record of kind for subjectID. A subject that is not
	// persisted is logged and skipped without error.
	Record(ctx context.Context, kind domain.AuditKind, subjectID uuid.UUID, activity *domain.Activity, actor *domain.User) error
	// RecordTransfer writes the From or To half of a transfer record.
	RecordTransfer(ctx context.Context, direction domain.TransferDirection, matterID, documentID uuid.UUID, activity *domain.Activity, actor *domain.User) error
}

type auditRecorder struct {
	records port.ActivityRecordRepository
	now     func() time.Time
}

// NewAuditRecorder creates a new AuditRecorder.
func NewAuditRecorder(records port.ActivityRecordRepository) AuditRecorder {
	return &auditRecorder{records: records, now: time.Now}
}

func (r *auditRecorder) Record(ctx context.Context, kind domain.AuditKind, subjectID uuid.UUID, activity *domain.Activity, actor *domain.User) error {
	if kind.IsTransfer() {
		return domain.NewValidationError("kind", "transfer records must be written with RecordTransfer")
	}
	if err := r.validate(kind, subjectID, activity, actor); err != nil {
		return err
	}
	ok, err := r.subjectExists(ctx, kind, subjectID, activity)
	if err != nil || !ok {
		return err
	}
	return r.write(ctx, &domain.ActivityRecord{
		Kind:       kind,
		SubjectID:  subjectID,
		ActivityID: activity.ID,
		UserID:     actor.ID,
	}, activity, actor)
}

func (r *auditRecorder) RecordTransfer(ctx context.Context, direction domain.TransferDirection, matterID, documentID uuid.UUID, activity *domain.Activity, actor *domain.User) error {
	kind := direction.Kind()
	if kind == "" {
		return domain.NewValidationError("direction", fmt.Sprintf("unknown transfer direction %q", direction))
	}
	if err := r.validate(kind, matterID, activity, actor); err != nil {
		return err
	}
	if documentID == uuid.Nil {
		return domain.NewValidationError("documentId", "is required")
	}
	ok, err := r.subjectExists(ctx, kind, matterID, activity)
	if err != nil || !ok {
		return err
	}
	ok, err = r.subjectExists(ctx, domain.AuditDocument, documentID, activity)
	if err != nil || !ok {
		return err
	}
	docID := documentID
	return r.write(ctx, &domain.ActivityRecord{
		Kind:       kind,
		SubjectID:  matterID,
		DocumentID: &docID,
		ActivityID: activity.ID,
		UserID:     actor.ID,
	}, activity, actor)
}

func (r *auditRecorder) validate(kind domain.AuditKind, subjectID uuid.UUID, activity *domain.Activity, actor *domain.User) error {
	if kind.Family() == "" {
		return domain.NewValidationError("kind", fmt.Sprintf("unknown audit kind %q", kind))
	}
	if subjectID == uuid.Nil {
		return domain.NewValidationError("subjectId", "is required")
	}
	if activity == nil || activity.ID == uuid.Nil {
		return domain.NewValidationError("activity", "is required")
	}
	if activity.Family != kind.Family() {
		return domain.NewValidationError("activity",
			fmt.Sprintf("%s activity cannot be recorded as %s", activity.Family, kind))
	}
	return validateActor(actor)
}

// subjectExists re-reads the subject so the record references the persisted
// row rather than the caller's copy.
func (r *auditRecorder) subjectExists(ctx context.Context, kind domain.AuditKind, subjectID uuid.UUID, activity *domain.Activity) (bool, error) {
	ok, err := r.records.Exists(ctx, kind, subjectID)
	if err != nil {
		return false, fmt.Errorf("auditRecorder: checking %s %s: %w", kind, subjectID, err)
	}
	if !ok {
		logrus.WithFields(logrus.Fields{
			"kind":       kind,
			"subject_id": subjectID,
			"activity":   activity.Name,
		}).Warn("auditRecorder: subject not found, record skipped")
	}
	return ok, nil
}

func (r *auditRecorder) write(ctx context.Context, rec *domain.ActivityRecord, activity *domain.Activity, actor *domain.User) error {
	if err := r.records.AttachExisting(ctx, activity, actor); err != nil {
		return err
	}
	rec.ID = uuid.New()
	rec.CreatedAt = r.now().UTC()
	if err := r.records.Create(ctx, rec); err != nil {
		return fmt.Errorf("auditRecorder: writing %s record: %w", rec.Kind, err)
	}
	return nil
}
