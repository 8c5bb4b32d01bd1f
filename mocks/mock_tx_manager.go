package mocks

import (
	"context"

	"docket/internal/port"
)

// TxManager runs the function directly, simulating a transaction. When fn
// succeeds it returns CommitErr, so tests can exercise a failed commit.
type TxManager struct {
	Calls     int
	CommitErr error
}

func (m *TxManager) ExecTx(ctx context.Context, fn port.TxFn) error {
	m.Calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return m.CommitErr
}
