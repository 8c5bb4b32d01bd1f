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

const documentColumns = "id, matter_id, file_name, extension, is_checked_out, is_deleted, created_at, updated_at"

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	doc.ID = uuid.New()
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO documents (id, matter_id, file_name, extension, is_checked_out, is_deleted, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		doc.ID, doc.MatterID, doc.FileName, doc.Extension, doc.IsCheckedOut, doc.IsDeleted,
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &doc,
		"SELECT "+documentColumns+" FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) ListByMatter(ctx context.Context, matterID uuid.UUID, includeDeleted bool, offset, limit int) ([]domain.Document, int, error) {
	q := conn(ctx, r.db)

	var total int
	err := sqlx.GetContext(ctx, q, &total,
		"SELECT COUNT(*) FROM documents WHERE matter_id = $1 AND ($2 OR NOT is_deleted)",
		matterID, includeDeleted)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByMatter count: %w", err)
	}

	var docs []domain.Document
	err = sqlx.SelectContext(ctx, q, &docs,
		"SELECT "+documentColumns+` FROM documents
		 WHERE matter_id = $1 AND ($2 OR NOT is_deleted)
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4`,
		matterID, includeDeleted, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByMatter: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()

	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE documents SET file_name = $1, extension = $2, is_checked_out = $3, is_deleted = $4, updated_at = $5
		 WHERE id = $6`,
		doc.FileName, doc.Extension, doc.IsCheckedOut, doc.IsDeleted, doc.UpdatedAt, doc.ID)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdateMatter(ctx context.Context, documentID, matterID uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE documents SET matter_id = $1, updated_at = $2 WHERE id = $3",
		matterID, time.Now().UTC(), documentID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateMatter: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
