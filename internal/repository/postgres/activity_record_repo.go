package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docket/internal/domain"
	"docket/internal/port"
)

// recordTable describes where records of one audit kind live. subjectTable is
// the entity the record's subject column points at.
type recordTable struct {
	table         string
	subjectColumn string
	subjectTable  string
}

var recordTables = map[domain.AuditKind]recordTable{
	domain.AuditMatter:             {table: "matter_activity_users", subjectColumn: "matter_id", subjectTable: "matters"},
	domain.AuditDocument:           {table: "document_activity_users", subjectColumn: "document_id", subjectTable: "documents"},
	domain.AuditRevision:           {table: "revision_activity_users", subjectColumn: "revision_id", subjectTable: "revisions"},
	domain.AuditMatterDocumentFrom: {table: "matter_document_activity_users_from", subjectColumn: "matter_id", subjectTable: "matters"},
	domain.AuditMatterDocumentTo:   {table: "matter_document_activity_users_to", subjectColumn: "matter_id", subjectTable: "matters"},
}

func tableFor(kind domain.AuditKind) (recordTable, error) {
	t, ok := recordTables[kind]
	if !ok {
		return recordTable{}, domain.NewValidationError("kind", fmt.Sprintf("unknown audit kind %q", kind))
	}
	return t, nil
}

type activityRecordRepo struct {
	db *sqlx.DB
}

// NewActivityRecordRepo creates a new PostgreSQL-backed ActivityRecordRepository.
func NewActivityRecordRepo(db *sqlx.DB) port.ActivityRecordRepository {
	return &activityRecordRepo{db: db}
}

// AttachExisting takes a key-share lock on the activity and user rows so they
// cannot disappear before the record referencing them commits.
func (r *activityRecordRepo) AttachExisting(ctx context.Context, activity *domain.Activity, user *domain.User) error {
	q := conn(ctx, r.db)

	var id uuid.UUID
	err := sqlx.GetContext(ctx, q, &id,
		"SELECT id FROM activities WHERE id = $1 FOR KEY SHARE", activity.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrActivityNotFound
		}
		return fmt.Errorf("activityRecordRepo.AttachExisting activity: %w", err)
	}

	err = sqlx.GetContext(ctx, q, &id,
		"SELECT id FROM users WHERE id = $1 FOR KEY SHARE", user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("activityRecordRepo.AttachExisting user: %w", err)
	}
	return nil
}

func (r *activityRecordRepo) Exists(ctx context.Context, kind domain.AuditKind, subjectID uuid.UUID) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	var exists bool
	err = sqlx.GetContext(ctx, conn(ctx, r.db), &exists,
		"SELECT EXISTS (SELECT 1 FROM "+t.subjectTable+" WHERE id = $1)", subjectID)
	if err != nil {
		return false, fmt.Errorf("activityRecordRepo.Exists: %w", err)
	}
	return exists, nil
}

func (r *activityRecordRepo) Create(ctx context.Context, rec *domain.ActivityRecord) error {
	t, err := tableFor(rec.Kind)
	if err != nil {
		return err
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	if rec.Kind.IsTransfer() {
		if rec.DocumentID == nil {
			return domain.NewValidationError("documentId", "transfer records require a document")
		}
		_, err = conn(ctx, r.db).ExecContext(ctx,
			"INSERT INTO "+t.table+` (id, matter_id, document_id, activity_id, user_id, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			rec.ID, rec.SubjectID, *rec.DocumentID, rec.ActivityID, rec.UserID, rec.CreatedAt)
	} else {
		_, err = conn(ctx, r.db).ExecContext(ctx,
			"INSERT INTO "+t.table+" (id, "+t.subjectColumn+`, activity_id, user_id, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			rec.ID, rec.SubjectID, rec.ActivityID, rec.UserID, rec.CreatedAt)
	}
	if err != nil {
		return fmt.Errorf("activityRecordRepo.Create %s: %w", rec.Kind, err)
	}
	return nil
}

// selectViews builds a projection of one record table onto ActivityRecordView.
func selectViews(kind domain.AuditKind, t recordTable) string {
	documentCol := "NULL::uuid"
	if kind.IsTransfer() {
		documentCol = "r.document_id"
	}
	return fmt.Sprintf(`SELECT r.id, '%s' AS kind, r.%s AS subject_id, %s AS document_id,
		r.activity_id, r.user_id, r.created_at, a.name AS activity_name, u.name AS user_name
		FROM %s r
		JOIN activities a ON a.id = r.activity_id
		JOIN users u ON u.id = r.user_id`,
		kind, t.subjectColumn, documentCol, t.table)
}

func (r *activityRecordRepo) ListBySubject(ctx context.Context, kind domain.AuditKind, subjectID uuid.UUID, offset, limit int) ([]domain.ActivityRecordView, int, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, 0, err
	}
	q := conn(ctx, r.db)

	var total int
	err = sqlx.GetContext(ctx, q, &total,
		"SELECT COUNT(*) FROM "+t.table+" WHERE "+t.subjectColumn+" = $1", subjectID)
	if err != nil {
		return nil, 0, fmt.Errorf("activityRecordRepo.ListBySubject count: %w", err)
	}

	var views []domain.ActivityRecordView
	err = sqlx.SelectContext(ctx, q, &views,
		selectViews(kind, t)+" WHERE r."+t.subjectColumn+" = $1 ORDER BY r.created_at, r.id LIMIT $2 OFFSET $3",
		subjectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("activityRecordRepo.ListBySubject: %w", err)
	}
	return views, total, nil
}

func (r *activityRecordRepo) ListTransfers(ctx context.Context, documentID uuid.UUID) ([]domain.ActivityRecordView, error) {
	from := recordTables[domain.AuditMatterDocumentFrom]
	to := recordTables[domain.AuditMatterDocumentTo]

	query := "SELECT * FROM (" +
		selectViews(domain.AuditMatterDocumentFrom, from) + " WHERE r.document_id = $1" +
		" UNION ALL " +
		selectViews(domain.AuditMatterDocumentTo, to) + " WHERE r.document_id = $1" +
		") t ORDER BY created_at, kind"

	var views []domain.ActivityRecordView
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &views, query, documentID); err != nil {
		return nil, fmt.Errorf("activityRecordRepo.ListTransfers: %w", err)
	}
	return views, nil
}
