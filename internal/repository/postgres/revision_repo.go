package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docket/internal/domain"
	"docket/internal/port"
)

const revisionColumns = "id, document_id, revision_number, seq, creation_date, modification_date, is_deleted"

type revisionRepo struct {
	db *sqlx.DB
}

// NewRevisionRepo creates a new PostgreSQL-backed RevisionRepository.
func NewRevisionRepo(db *sqlx.DB) port.RevisionRepository {
	return &revisionRepo{db: db}
}

func (r *revisionRepo) Create(ctx context.Context, rev *domain.Revision) error {
	rev.ID = uuid.New()
	now := time.Now().UTC()
	rev.CreationDate = now
	rev.ModificationDate = now

	err := sqlx.GetContext(ctx, conn(ctx, r.db), &rev.Seq,
		`INSERT INTO revisions (id, document_id, revision_number, creation_date, modification_date, is_deleted)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING seq`,
		rev.ID, rev.DocumentID, rev.RevisionNumber, rev.CreationDate, rev.ModificationDate, rev.IsDeleted)
	if err != nil {
		return fmt.Errorf("revisionRepo.Create: %w", err)
	}
	return nil
}

func (r *revisionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Revision, error) {
	var rev domain.Revision
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &rev,
		"SELECT "+revisionColumns+" FROM revisions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRevisionNotFound
		}
		return nil, fmt.Errorf("revisionRepo.GetByID: %w", err)
	}
	return &rev, nil
}

func (r *revisionRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Revision, error) {
	var revs []domain.Revision
	err := sqlx.SelectContext(ctx, conn(ctx, r.db), &revs,
		"SELECT "+revisionColumns+" FROM revisions WHERE document_id = $1 ORDER BY seq",
		documentID)
	if err != nil {
		return nil, fmt.Errorf("revisionRepo.ListByDocument: %w", err)
	}
	return revs, nil
}

// NextRevisionNumber locks the document row so concurrent appends are numbered
// sequentially when called inside a transaction.
func (r *revisionRepo) NextRevisionNumber(ctx context.Context, documentID uuid.UUID) (int, error) {
	q := conn(ctx, r.db)

	var locked uuid.UUID
	err := sqlx.GetContext(ctx, q, &locked,
		"SELECT id FROM documents WHERE id = $1 FOR UPDATE", documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrDocumentNotFound
		}
		return 0, fmt.Errorf("revisionRepo.NextRevisionNumber lock: %w", err)
	}

	var next int
	err = sqlx.GetContext(ctx, q, &next,
		"SELECT COALESCE(MAX(revision_number), 0) + 1 FROM revisions WHERE document_id = $1",
		documentID)
	if err != nil {
		return 0, fmt.Errorf("revisionRepo.NextRevisionNumber: %w", err)
	}
	return next, nil
}

func (r *revisionRepo) Update(ctx context.Context, rev *domain.Revision) error {
	rev.ModificationDate = time.Now().UTC()

	result, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE revisions SET is_deleted = $1, modification_date = $2 WHERE id = $3",
		rev.IsDeleted, rev.ModificationDate, rev.ID)
	if err != nil {
		return fmt.Errorf("revisionRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRevisionNotFound
	}
	return nil
}
