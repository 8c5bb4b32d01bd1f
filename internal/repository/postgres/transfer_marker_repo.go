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

const markerColumns = `id, operation_id, operation, document_id, target_document_id, source_matter_id,
	target_matter_id, source_path, destination_path, status, last_error, attempts, created_at, updated_at`

type transferMarkerRepo struct {
	db *sqlx.DB
}

// NewTransferMarkerRepo creates a new PostgreSQL-backed TransferMarkerRepository.
func NewTransferMarkerRepo(db *sqlx.DB) port.TransferMarkerRepository {
	return &transferMarkerRepo{db: db}
}

func (r *transferMarkerRepo) Create(ctx context.Context, m *domain.TransferMarker) error {
	m.ID = uuid.New()
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO transfer_markers (`+markerColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.ID, m.OperationID, m.Operation, m.DocumentID, m.TargetDocumentID, m.SourceMatterID,
		m.TargetMatterID, m.SourcePath, m.DestinationPath, m.Status, m.LastError, m.Attempts,
		m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("transferMarkerRepo.Create: %w", err)
	}
	return nil
}

func (r *transferMarkerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TransferMarker, error) {
	var m domain.TransferMarker
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &m,
		"SELECT "+markerColumns+" FROM transfer_markers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMarkerNotFound
		}
		return nil, fmt.Errorf("transferMarkerRepo.GetByID: %w", err)
	}
	return &m, nil
}

// UpdateStatus also counts the file-step attempt.
func (r *transferMarkerRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransferStatus, lastErr string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE transfer_markers SET status = $1, last_error = $2, attempts = attempts + 1, updated_at = $3
		 WHERE id = $4`,
		status, lastErr, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("transferMarkerRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrMarkerNotFound
	}
	return nil
}

func (r *transferMarkerRepo) ListByStatus(ctx context.Context, status domain.TransferStatus, olderThan time.Time, limit int) ([]domain.TransferMarker, error) {
	var markers []domain.TransferMarker
	err := sqlx.SelectContext(ctx, conn(ctx, r.db), &markers,
		"SELECT "+markerColumns+` FROM transfer_markers
		 WHERE status = $1 AND updated_at < $2
		 ORDER BY updated_at
		 LIMIT $3`,
		status, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("transferMarkerRepo.ListByStatus: %w", err)
	}
	return markers, nil
}
