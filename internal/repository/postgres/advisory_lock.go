package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"docket/internal/domain"
	"docket/internal/port"
)

type advisoryLocker struct {
	db *sqlx.DB
}

// NewAdvisoryLocker creates a DocumentLocker backed by session-level
// pg_try_advisory_lock. Each held lock pins one pooled connection.
func NewAdvisoryLocker(db *sqlx.DB) port.DocumentLocker {
	return &advisoryLocker{db: db}
}

func (l *advisoryLocker) TryLock(ctx context.Context, documentID uuid.UUID) (port.ReleaseFunc, error) {
	c, err := l.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("advisoryLocker.TryLock conn: %w", err)
	}

	var acquired bool
	err = c.GetContext(ctx, &acquired,
		"SELECT pg_try_advisory_lock(hashtextextended($1, 0))", documentID.String())
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("advisoryLocker.TryLock: %w", err)
	}
	if !acquired {
		_ = c.Close()
		return nil, domain.ErrDocumentLocked
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// unlock with a fresh context so a cancelled request still releases
			_, err := c.ExecContext(context.Background(),
				"SELECT pg_advisory_unlock(hashtextextended($1, 0))", documentID.String())
			if err != nil {
				logrus.WithError(err).WithField("document_id", documentID).
					Warn("advisoryLocker: unlock failed")
			}
			_ = c.Close()
		})
	}, nil
}
