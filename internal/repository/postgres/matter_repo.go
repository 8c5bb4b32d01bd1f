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

const matterColumns = "id, description, is_archived, is_deleted, creation_date, updated_at"

type matterRepo struct {
	db *sqlx.DB
}

// NewMatterRepo creates a new PostgreSQL-backed MatterRepository.
func NewMatterRepo(db *sqlx.DB) port.MatterRepository {
	return &matterRepo{db: db}
}

func (r *matterRepo) Create(ctx context.Context, matter *domain.Matter) error {
	matter.ID = uuid.New()
	now := time.Now().UTC()
	matter.CreationDate = now
	matter.UpdatedAt = now

	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO matters (id, description, is_archived, is_deleted, creation_date, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		matter.ID, matter.Description, matter.IsArchived, matter.IsDeleted,
		matter.CreationDate, matter.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateMatter
		}
		return fmt.Errorf("matterRepo.Create: %w", err)
	}
	return nil
}

func (r *matterRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Matter, error) {
	var matter domain.Matter
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &matter,
		"SELECT "+matterColumns+" FROM matters WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatterNotFound
		}
		return nil, fmt.Errorf("matterRepo.GetByID: %w", err)
	}
	return &matter, nil
}

func (r *matterRepo) GetByDescription(ctx context.Context, description string) (*domain.Matter, error) {
	var matter domain.Matter
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &matter,
		"SELECT "+matterColumns+" FROM matters WHERE description = $1", description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatterNotFound
		}
		return nil, fmt.Errorf("matterRepo.GetByDescription: %w", err)
	}
	return &matter, nil
}

func (r *matterRepo) List(ctx context.Context, includeDeleted bool, offset, limit int) ([]domain.Matter, int, error) {
	q := conn(ctx, r.db)

	var total int
	err := sqlx.GetContext(ctx, q, &total,
		"SELECT COUNT(*) FROM matters WHERE ($1 OR NOT is_deleted)", includeDeleted)
	if err != nil {
		return nil, 0, fmt.Errorf("matterRepo.List count: %w", err)
	}

	var matters []domain.Matter
	err = sqlx.SelectContext(ctx, q, &matters,
		"SELECT "+matterColumns+` FROM matters
		 WHERE ($1 OR NOT is_deleted)
		 ORDER BY creation_date DESC
		 LIMIT $2 OFFSET $3`,
		includeDeleted, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("matterRepo.List: %w", err)
	}
	return matters, total, nil
}

func (r *matterRepo) Update(ctx context.Context, matter *domain.Matter) error {
	matter.UpdatedAt = time.Now().UTC()

	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE matters SET description = $1, is_archived = $2, is_deleted = $3, updated_at = $4
		 WHERE id = $5`,
		matter.Description, matter.IsArchived, matter.IsDeleted, matter.UpdatedAt, matter.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateMatter
		}
		return fmt.Errorf("matterRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrMatterNotFound
	}
	return nil
}
