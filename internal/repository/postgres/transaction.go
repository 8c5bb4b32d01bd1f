package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"docket/internal/domain"
	"docket/internal/port"
)

type transactionManager struct {
	db *sqlx.DB
}

// NewTransactionManager creates a TransactionManager over db. Nested ExecTx
// calls join the outer transaction.
func NewTransactionManager(db *sqlx.DB) port.TransactionManager {
	return &transactionManager{db: db}
}

func (tm *transactionManager) ExecTx(ctx context.Context, fn port.TxFn) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	tx, err := tm.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrPersistence, err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logrus.WithError(err).Warn("transactionManager.ExecTx: rollback failed")
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrPersistence, err)
	}
	return nil
}
