package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"docket/internal/domain"
	"docket/internal/port"
)

type activityRepo struct {
	db *sqlx.DB
}

// NewActivityRepo creates a new PostgreSQL-backed ActivityRepository.
func NewActivityRepo(db *sqlx.DB) port.ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) List(ctx context.Context) ([]domain.Activity, error) {
	var activities []domain.Activity
	err := sqlx.SelectContext(ctx, conn(ctx, r.db), &activities,
		"SELECT id, family, name FROM activities ORDER BY family, name")
	if err != nil {
		return nil, fmt.Errorf("activityRepo.List: %w", err)
	}
	return activities, nil
}

func (r *activityRepo) GetByFamilyAndName(ctx context.Context, family domain.ActivityFamily, name domain.ActivityName) (*domain.Activity, error) {
	var activity domain.Activity
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &activity,
		"SELECT id, family, name FROM activities WHERE family = $1 AND name = $2", family, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("activityRepo.GetByFamilyAndName: %w", err)
	}
	return &activity, nil
}
